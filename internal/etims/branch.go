package etims

import "fmt"

// CmdBranch handles branch commands
func (c *Client) CmdBranch(args []string) error {
	if len(args) == 0 {
		fmt.Println("Usage: etims-cli branch <subcommand>")
		fmt.Println("Subcommands: sync")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  etims-cli branch sync")
		return nil
	}

	switch args[0] {
	case "sync":
		fmt.Printf("%sQueueing branch search against eTIMS...%s\n", Blue, Reset)
		return c.dispatchAction(SearchBranchAction())
	default:
		return fmt.Errorf("unknown branch subcommand: %s", args[0])
	}
}
