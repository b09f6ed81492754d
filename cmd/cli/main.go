package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "finbooks-cli",
		Short: "FinBooks CLI tool",
		Long:  `A command line interface for interacting with the FinBooks API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the FinBooks API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(currencyCmd())
	rootCmd.AddCommand(rateCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(entryCmd())
	rootCmd.AddCommand(transferCmd())
	rootCmd.AddCommand(clientCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func currencyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "currency",
		Short: "Currency operations",
	}

	var isDefault bool
	addCmd := &cobra.Command{
		Use:   "add <code>",
		Short: "Register a currency",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/currencies/", map[string]any{
				"code":       args[0],
				"is_default": isDefault,
			})
		},
	}
	addCmd.Flags().BoolVar(&isDefault, "default", false, "Mark as the default currency")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List currencies",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/currencies/")
		},
	}

	cmd.AddCommand(addCmd, listCmd)
	return cmd
}

func rateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Exchange rate operations",
	}

	var effectiveFrom string
	addCmd := &cobra.Command{
		Use:   "add <code> <rate>",
		Short: "Append an exchange rate",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{
				"currency": args[0],
				"rate":     args[1],
			}
			if effectiveFrom != "" {
				payload["effective_from"] = effectiveFrom
			}
			post("/api/v1/rates/", payload)
		},
	}
	addCmd.Flags().StringVar(&effectiveFrom, "from", "", "Effective date (RFC3339), defaults to now")

	getCmd := &cobra.Command{
		Use:   "get <code>",
		Short: "Show the rate effective today",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/rates/" + args[0])
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history <code>",
		Short: "Show the rate history of a currency",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/rates/" + args[0] + "/history")
		},
	}

	cmd.AddCommand(addCmd, getCmd, historyCmd)
	return cmd
}

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Cash register operations",
	}

	addCmd := &cobra.Command{
		Use:   "add <name> <currency>",
		Short: "Create a cash register",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/registers/", map[string]any{
				"name":     args[0],
				"currency": args[1],
			})
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List cash registers",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/registers/")
		},
	}

	balanceCmd := &cobra.Command{
		Use:   "balance <id>",
		Short: "Show a register's balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/registers/" + args[0] + "/balance")
		},
	}

	cmd.AddCommand(addCmd, listCmd, balanceCmd)
	return cmd
}

func entryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Ledger entry operations",
	}

	var (
		isDebt     bool
		clientID   string
		registerID string
		date       string
	)
	addCmd := &cobra.Command{
		Use:   "add <direction> <amount> <currency>",
		Short: "Create a ledger entry",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]any{
				"direction": args[0],
				"amount":    args[1],
				"currency":  args[2],
				"is_debt":   isDebt,
			}
			if clientID != "" {
				payload["client_id"] = clientID
			}
			if registerID != "" {
				payload["register_id"] = registerID
			}
			if date != "" {
				payload["date"] = date
			}
			post("/api/v1/entries/", payload)
		},
	}
	addCmd.Flags().BoolVar(&isDebt, "debt", false, "Record as a debt entry")
	addCmd.Flags().StringVar(&clientID, "client", "", "Client the entry belongs to")
	addCmd.Flags().StringVar(&registerID, "register", "", "Cash register the entry goes through")
	addCmd.Flags().StringVar(&date, "date", "", "Entry date (RFC3339), defaults to now")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show an entry",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/entries/" + args[0])
		},
	}

	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry, reversing its balance effects",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			del("/api/v1/entries/" + args[0])
		},
	}

	cmd.AddCommand(addCmd, getCmd, deleteCmd)
	return cmd
}

func transferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Cash transfer operations",
	}

	var note string
	createCmd := &cobra.Command{
		Use:   "create <from-register> <to-register> <amount>",
		Short: "Move money between registers",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/transfers/", map[string]any{
				"from_register_id": args[0],
				"to_register_id":   args[1],
				"amount":           args[2],
				"note":             note,
			})
		},
	}
	createCmd.Flags().StringVar(&note, "note", "", "Optional transfer note")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a transfer",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/transfers/" + args[0])
		},
	}

	cmd.AddCommand(createCmd, getCmd)
	return cmd
}

func clientCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "client",
		Short: "Client operations",
	}

	balanceCmd := &cobra.Command{
		Use:   "balance <id>",
		Short: "Show a client's balance in the base currency",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/clients/" + args[0] + "/balance")
		},
	}

	reconcileCmd := &cobra.Command{
		Use:   "reconcile <id>",
		Short: "Recompute a client's balance from its entries",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/clients/"+args[0]+"/reconcile", nil)
		},
	}

	cmd.AddCommand(balanceCmd, reconcileCmd)
	return cmd
}

func get(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	printResponse(resp)
}

func post(path string, payload any) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			fmt.Printf("Error encoding request: %v\n", err)
			os.Exit(1)
		}
		body = bytes.NewReader(data)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", body)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	printResponse(resp)
}

func del(path string) {
	req, err := http.NewRequest(http.MethodDelete, baseURL+path, nil)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	printResponse(resp)
}

func printResponse(resp *http.Response) {
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(data))
		os.Exit(1)
	}

	if len(data) == 0 {
		fmt.Printf("OK (Status: %d)\n", resp.StatusCode)
		return
	}

	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		fmt.Println(string(data))
		return
	}
	fmt.Println(out.String())
}
