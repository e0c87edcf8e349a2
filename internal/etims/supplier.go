package etims

import "fmt"

// CmdSupplier handles supplier commands
func (c *Client) CmdSupplier(args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: etims-cli supplier <subcommand> [args...]")
		fmt.Println("Subcommands: register, submit-all")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  etims-cli supplier register \"Parts Ltd\"")
		fmt.Println("  etims-cli supplier submit-all \"Parts Ltd\" \"Timber Co\"")
		return nil
	}

	switch args[0] {
	case "register":
		if len(args) < 2 {
			return fmt.Errorf("usage: etims-cli supplier register <name>")
		}
		fmt.Printf("%sQueueing eTIMS registration for supplier: %s%s\n", Blue, args[1], Reset)
		return c.dispatchAction(RegisterSupplierAction(args[1]))
	case "submit-all":
		fmt.Printf("%sQueueing bulk supplier submission (%d selected)...%s\n", Blue, len(args[1:]), Reset)
		return c.dispatchAction(SubmitAllSuppliersAction(args[1:]))
	default:
		return fmt.Errorf("unknown supplier subcommand: %s", args[0])
	}
}
