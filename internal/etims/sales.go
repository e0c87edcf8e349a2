package etims

import "fmt"

// CmdInvoice handles sales invoice commands
func (c *Client) CmdInvoice(args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: etims-cli invoice <subcommand> [args...]")
		fmt.Println("Subcommands: submit, submit-all")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  etims-cli invoice submit \"ACC-SINV-2026-00042\"")
		fmt.Println("  etims-cli invoice submit-all \"ACC-SINV-2026-00042\" \"ACC-SINV-2026-00043\"")
		return nil
	}

	switch args[0] {
	case "submit":
		if len(args) < 2 {
			return fmt.Errorf("usage: etims-cli invoice submit <name>")
		}
		fmt.Printf("%sQueueing eTIMS submission for sales invoice: %s%s\n", Blue, args[1], Reset)
		return c.dispatchAction(SubmitInvoiceAction(args[1]))
	case "submit-all":
		fmt.Printf("%sQueueing bulk sales invoice submission (%d selected)...%s\n", Blue, len(args[1:]), Reset)
		return c.dispatchAction(SubmitAllInvoicesAction(args[1:]))
	default:
		return fmt.Errorf("unknown invoice subcommand: %s", args[0])
	}
}
