package etims

import "fmt"

// CmdNotices handles KRA notice commands
func (c *Client) CmdNotices(args []string) error {
	if len(args) == 0 || args[0] != "refresh" {
		fmt.Println("Usage: etims-cli notices refresh")
		fmt.Println()
		fmt.Println("Queues a notice search against the selected eTIMS settings.")
		return nil
	}

	fmt.Printf("%sQueueing KRA notice refresh...%s\n", Blue, Reset)
	return c.dispatchAction(RefreshNoticesAction())
}

// CmdCodes handles code list commands
func (c *Client) CmdCodes(args []string) error {
	if len(args) == 0 || args[0] != "refresh" {
		fmt.Println("Usage: etims-cli codes refresh")
		fmt.Println()
		fmt.Println("Queues a refresh of the eTIMS code lists (taxation types,")
		fmt.Println("packaging units, units of quantity) for the selected settings.")
		return nil
	}

	fmt.Printf("%sQueueing eTIMS code list refresh...%s\n", Blue, Reset)
	return c.dispatchAction(RefreshCodeListsAction())
}
