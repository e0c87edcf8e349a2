package main

import (
	"fmt"
	"os"

	"github.com/mtlabs/etims-cli/internal/etims"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}

	cmd := os.Args[1]

	// Help doesn't need config
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		printUsage()
		os.Exit(0)
	}

	// Version
	if cmd == "version" || cmd == "-v" || cmd == "--version" {
		fmt.Printf("eTIMS CLI v%s\n", etims.Version)
		os.Exit(0)
	}

	// Setup wizard (also runs when no config file exists yet)
	if cmd == "setup" {
		if err := etims.RunSetupTUI(); err != nil {
			fmt.Printf("%sError: %s%s\n", etims.Red, err, etims.Reset)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Load config
	config, err := etims.LoadConfig()
	if err != nil {
		fmt.Printf("%s%s%s\n", etims.Yellow, err, etims.Reset)
		if err := etims.RunSetupTUI(); err != nil {
			fmt.Printf("%sError: %s%s\n", etims.Red, err, etims.Reset)
			os.Exit(1)
		}
		config, err = etims.LoadConfig()
		if err != nil {
			fmt.Printf("%sError: %s%s\n", etims.Red, err, etims.Reset)
			os.Exit(1)
		}
	}

	// Create client
	client := etims.NewClient(config)

	// Detect connection mode (except for ping/config which do it themselves)
	if cmd != "ping" && cmd != "config" {
		client.DetectConnection()
	}

	// Route commands
	var cmdErr error
	switch cmd {
	case "ping":
		cmdErr = client.CmdPing()
	case "config":
		cmdErr = client.CmdConfig()
	case "settings":
		cmdErr = client.CmdSettings(os.Args[2:])
	case "customer":
		cmdErr = client.CmdCustomer(os.Args[2:])
	case "supplier":
		cmdErr = client.CmdSupplier(os.Args[2:])
	case "item":
		cmdErr = client.CmdItem(os.Args[2:])
	case "branch":
		cmdErr = client.CmdBranch(os.Args[2:])
	case "invoice":
		cmdErr = client.CmdInvoice(os.Args[2:])
	case "notices":
		cmdErr = client.CmdNotices(os.Args[2:])
	case "codes":
		cmdErr = client.CmdCodes(os.Args[2:])
	default:
		fmt.Printf("%sUnknown command: %s%s\n", etims.Red, cmd, etims.Reset)
		printUsage()
		os.Exit(1)
	}

	if cmdErr != nil {
		// Dispatch failures were already shown as a notice; don't repeat them.
		if !etims.AlreadyNotified(cmdErr) {
			fmt.Printf("%sError: %s%s\n", etims.Red, cmdErr, etims.Reset)
		}
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`%seTIMS CLI%s - queue tax-compliance tasks against KRA eTIMS

Usage: etims-cli <command> [subcommand] [args...]

%sCommands:%s

  %sping%s                              Test connection and authentication
  %sconfig%s                            Show current configuration
  %ssetup%s                             Run the setup wizard
  %sversion%s                           Show version information

%sSettings:%s
  %ssettings list%s                     List active eTIMS settings records

%sCustomers:%s
  %scustomer register <name>%s          Queue eTIMS registration of a customer
  %scustomer submit-all <name...>%s     Queue bulk customer submission

%sSuppliers:%s
  %ssupplier register <name>%s          Queue eTIMS registration of a supplier
  %ssupplier submit-all <name...>%s     Queue bulk supplier submission

%sItems:%s
  %sitem register <code>%s              Queue eTIMS registration of an item
  %sitem submit-all <code...>%s         Queue bulk item submission

%sBranches:%s
  %sbranch sync%s                       Queue a branch search against eTIMS

%sSales Invoices:%s
  %sinvoice submit <name>%s             Queue eTIMS submission of an invoice
  %sinvoice submit-all <name...>%s      Queue bulk invoice submission

%sMaintenance:%s
  %snotices refresh%s                   Queue a KRA notice search
  %scodes refresh%s                     Queue an eTIMS code list refresh

%sExamples:%s
  etims-cli ping
  etims-cli customer register "Acme Corp"
  etims-cli invoice submit-all "ACC-SINV-2026-00042" "ACC-SINV-2026-00043"

When several active settings records exist, a picker asks which one the
action should run against; with exactly one it is used automatically.

`,
		etims.Blue, etims.Reset,
		etims.Yellow, etims.Reset,
		etims.Green, etims.Reset, etims.Green, etims.Reset, etims.Green, etims.Reset, etims.Green, etims.Reset,
		etims.Yellow, etims.Reset,
		etims.Green, etims.Reset,
		etims.Yellow, etims.Reset,
		etims.Green, etims.Reset, etims.Green, etims.Reset,
		etims.Yellow, etims.Reset,
		etims.Green, etims.Reset, etims.Green, etims.Reset,
		etims.Yellow, etims.Reset,
		etims.Green, etims.Reset, etims.Green, etims.Reset,
		etims.Yellow, etims.Reset,
		etims.Green, etims.Reset,
		etims.Yellow, etims.Reset,
		etims.Green, etims.Reset, etims.Green, etims.Reset,
		etims.Yellow, etims.Reset,
		etims.Green, etims.Reset, etims.Green, etims.Reset,
		etims.Yellow, etims.Reset,
	)
}
