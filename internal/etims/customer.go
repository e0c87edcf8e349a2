package etims

import "fmt"

// CmdCustomer handles customer commands
func (c *Client) CmdCustomer(args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: etims-cli customer <subcommand> [args...]")
		fmt.Println("Subcommands: register, submit-all")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  etims-cli customer register \"Acme Corp\"")
		fmt.Println("  etims-cli customer submit-all \"Acme Corp\" \"Beta Ltd\"")
		return nil
	}

	switch args[0] {
	case "register":
		if len(args) < 2 {
			return fmt.Errorf("usage: etims-cli customer register <name>")
		}
		fmt.Printf("%sQueueing eTIMS registration for customer: %s%s\n", Blue, args[1], Reset)
		return c.dispatchAction(RegisterCustomerAction(args[1]))
	case "submit-all":
		fmt.Printf("%sQueueing bulk customer submission (%d selected)...%s\n", Blue, len(args[1:]), Reset)
		return c.dispatchAction(SubmitAllCustomersAction(args[1:]))
	default:
		return fmt.Errorf("unknown customer subcommand: %s", args[0])
	}
}
