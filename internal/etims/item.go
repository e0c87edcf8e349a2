package etims

import "fmt"

// CmdItem handles item commands
func (c *Client) CmdItem(args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: etims-cli item <subcommand> [args...]")
		fmt.Println("Subcommands: register, submit-all")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  etims-cli item register \"SKU-0042\"")
		fmt.Println("  etims-cli item submit-all \"SKU-0042\" \"SKU-0043\"")
		return nil
	}

	switch args[0] {
	case "register":
		if len(args) < 2 {
			return fmt.Errorf("usage: etims-cli item register <code>")
		}
		fmt.Printf("%sQueueing eTIMS registration for item: %s%s\n", Blue, args[1], Reset)
		return c.dispatchAction(RegisterItemAction(args[1]))
	case "submit-all":
		fmt.Printf("%sQueueing bulk item submission (%d selected)...%s\n", Blue, len(args[1:]), Reset)
		return c.dispatchAction(SubmitAllItemsAction(args[1:]))
	default:
		return fmt.Errorf("unknown item subcommand: %s", args[0])
	}
}
