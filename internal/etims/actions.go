package etims

import "fmt"

// Dotted paths of the whitelisted server methods the CLI queues work through.
const (
	apiBase  = "etims_integration.apis.apis."
	taskBase = "etims_integration.background_tasks.tasks."
)

// RegisterCustomerAction queues eTIMS registration of one customer.
func RegisterCustomerAction(name string) ActionRequest {
	return ActionRequest{
		Method: apiBase + "send_branch_customer_details",
		Args: map[string]any{
			"settings":    SettingsPlaceholder,
			"is_customer": true,
		},
		Docs:    []string{name},
		Success: fmt.Sprintf("Customer %s queued for eTIMS registration", name),
	}
}

// SubmitAllCustomersAction queues bulk submission of the named customers.
func SubmitAllCustomersAction(names []string) ActionRequest {
	return ActionRequest{
		Method:      apiBase + "submit_all_customers",
		Args:        map[string]any{"settings_name": SettingsPlaceholder},
		Docs:        names,
		Bulk:        true,
		Success:     "Customer submission queued",
		EmptyNotice: "Please select customers to submit",
	}
}

// RegisterSupplierAction queues eTIMS registration of one supplier. The
// server handles suppliers through the same method as customers.
func RegisterSupplierAction(name string) ActionRequest {
	return ActionRequest{
		Method: apiBase + "send_branch_customer_details",
		Args: map[string]any{
			"settings":    SettingsPlaceholder,
			"is_customer": false,
		},
		Docs:    []string{name},
		Success: fmt.Sprintf("Supplier %s queued for eTIMS registration", name),
	}
}

// SubmitAllSuppliersAction queues bulk submission of the named suppliers.
func SubmitAllSuppliersAction(names []string) ActionRequest {
	return ActionRequest{
		Method:      apiBase + "submit_all_suppliers",
		Args:        map[string]any{"settings_name": SettingsPlaceholder},
		Docs:        names,
		Bulk:        true,
		Success:     "Supplier submission queued",
		EmptyNotice: "Please select suppliers to submit",
	}
}

// RegisterItemAction queues eTIMS registration of one item.
func RegisterItemAction(code string) ActionRequest {
	return ActionRequest{
		Method: apiBase + "perform_item_registration",
		Args: map[string]any{
			"item_name":     code,
			"settings_name": SettingsPlaceholder,
		},
		Success: fmt.Sprintf("Item %s queued for eTIMS registration", code),
	}
}

// SubmitAllItemsAction queues bulk submission of the named items.
func SubmitAllItemsAction(codes []string) ActionRequest {
	return ActionRequest{
		Method:      apiBase + "submit_all_items",
		Args:        map[string]any{"settings_name": SettingsPlaceholder},
		Docs:        codes,
		Bulk:        true,
		Success:     "Item submission queued",
		EmptyNotice: "Please select items to submit",
	}
}

// SearchBranchAction queues a branch search against the selected settings.
func SearchBranchAction() ActionRequest {
	return ActionRequest{
		Method: taskBase + "search_branch_request",
		Args: map[string]any{
			"request_data":  "{}",
			"settings_name": SettingsPlaceholder,
		},
		Success: "Branch search queued",
	}
}

// SubmitInvoiceAction queues submission of one sales invoice.
func SubmitInvoiceAction(name string) ActionRequest {
	return ActionRequest{
		Method:  apiBase + "submit_sales_invoice",
		Args:    map[string]any{"settings_name": SettingsPlaceholder},
		Docs:    []string{name},
		Success: fmt.Sprintf("Sales invoice %s queued for eTIMS submission", name),
	}
}

// SubmitAllInvoicesAction queues bulk submission of the named sales invoices.
func SubmitAllInvoicesAction(names []string) ActionRequest {
	return ActionRequest{
		Method:      apiBase + "bulk_submit_sales_invoices",
		Args:        map[string]any{"settings_name": SettingsPlaceholder},
		Docs:        names,
		Bulk:        true,
		Success:     "Sales invoice submission queued",
		EmptyNotice: "Please select sales invoices to submit",
	}
}

// RefreshNoticesAction queues a notice search for the selected settings.
func RefreshNoticesAction() ActionRequest {
	return ActionRequest{
		Method: taskBase + "perform_notice_search",
		Args: map[string]any{
			"request_data":  "{}",
			"settings_name": SettingsPlaceholder,
		},
		Success: "Notice refresh queued",
	}
}

// RefreshCodeListsAction queues a code list refresh for the selected settings.
func RefreshCodeListsAction() ActionRequest {
	return ActionRequest{
		Method: taskBase + "refresh_code_lists",
		Args: map[string]any{
			"request_data":  "{}",
			"settings_name": SettingsPlaceholder,
		},
		Success: "Code list refresh queued",
	}
}
