package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
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
		Use:   "bookkeeper-cli",
		Short: "Bookkeeper CLI tool",
		Long:  `A command line interface for interacting with the Bookkeeper API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Bookkeeper API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Account commands
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var asOf string
	balanceCmd := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Query an account balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getBalance(args[0], asOf)
		},
	}
	balanceCmd.Flags().StringVar(&asOf, "as-of", "", "Balance as of an RFC 3339 timestamp")

	accountCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(accountCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	ledgerCmd.AddCommand(consistencyCmd)
	rootCmd.AddCommand(ledgerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func getBalance(accountID, asOf string) {
	endpoint := fmt.Sprintf("%s/api/v1/accounts/%s/balance", baseURL, accountID)
	if asOf != "" {
		endpoint += "?as_of=" + url.QueryEscape(asOf)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(endpoint)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Balance query FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Account:  %v\n", result["account_id"])
	fmt.Printf("Currency: %v\n", result["currency"])
	fmt.Printf("As of:    %v\n", result["as_of"])
	fmt.Printf("Debits:   %v\n", result["debits"])
	fmt.Printf("Credits:  %v\n", result["credits"])
	fmt.Printf("Balance:  %v\n", result["balance"])
}

func checkConsistency() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/ledger/consistency")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if consistent, ok := result["consistent"].(bool); ok && consistent {
		fmt.Printf("Consistency check PASSED\n")
	} else {
		fmt.Printf("Consistency check FAILED\n")
		if unbalanced, ok := result["unbalanced_transactions"].([]any); ok {
			for _, id := range unbalanced {
				fmt.Printf("  unbalanced: %v\n", id)
			}
		}
		os.Exit(1)
	}
}
