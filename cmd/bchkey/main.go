// bchkey CLI - Bitcoin Cash private key tool
//
// This CLI exposes the library's key handling: generating fresh keys,
// decoding existing ones from WIF or hex, deriving addresses, and parsing
// BIP 21 payment request URIs.
//
// Example usage:
//
//	# Generate a testnet key and show its secret forms
//	bchkey generate --network testnet --show-secret
//
//	# Decode a WIF key
//	bchkey inspect KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn
//
//	# Derive addresses, retargeted to another network
//	bchkey address <key> --network regtest
//
//	# Parse a payment request
//	bchkey parse-uri "bitcoincash:qpm2qsznhks23z7629mms6s4cwef74vcwvy22gdx6a?amount=1.5"
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/suffix-labs/bchkey/pkg/keys"
	"github.com/suffix-labs/bchkey/pkg/payuri"
)

const version = "0.1.0"

var (
	// Global flags
	jsonOutput bool

	// Root command
	rootCmd = &cobra.Command{
		Use:   "bchkey",
		Short: "bchkey - Bitcoin Cash private key tool",
		Long: `bchkey generates, imports, and inspects Bitcoin Cash private keys.

Examples:
  bchkey generate --network testnet
  bchkey inspect KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn
  bchkey address 0000000000000000000000000000000000000000000000000000000000000001
  bchkey parse-uri "bitcoincash:qpm2qsznhks23z7629mms6s4cwef74vcwvy22gdx6a?amount=1.5"`,
	}

	// Generate command
	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate a new private key",
		Run:   runGenerate,
	}

	// Inspect command
	inspectCmd = &cobra.Command{
		Use:   "inspect [KEY]",
		Short: "Decode a private key from WIF or hex",
		Long: `Decode a private key and print its public key and addresses.

KEY is auto-detected: 51- and 52-character strings are decoded as WIF,
anything else as a hex scalar. Without an argument the key is read from
stdin, with echo disabled when stdin is a terminal.`,
		Args: cobra.MaximumNArgs(1),
		Run:  runInspect,
	}

	// Address command
	addressCmd = &cobra.Command{
		Use:   "address KEY",
		Short: "Derive the addresses of a private key",
		Args:  cobra.ExactArgs(1),
		Run:   runAddress,
	}

	// Parse-uri command
	parseURICmd = &cobra.Command{
		Use:   "parse-uri URI",
		Short: "Parse a BIP 21 payment request URI",
		Args:  cobra.ExactArgs(1),
		Run:   runParseURI,
	}

	// Version command
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run:   runVersion,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	// Generate command flags
	generateCmd.Flags().StringP("network", "n", "mainnet", "Network (mainnet, testnet, regtest)")
	generateCmd.Flags().Bool("uncompressed", false, "Prefer the uncompressed public-key form")
	generateCmd.Flags().Bool("show-secret", false, "Print the WIF and hex forms of the private key")
	rootCmd.AddCommand(generateCmd)

	// Inspect command flags
	inspectCmd.Flags().String("network", "", "Network for hex input (rejected for WIF, which encodes its own)")
	inspectCmd.Flags().Bool("show-secret", false, "Print the WIF and hex forms of the private key")
	rootCmd.AddCommand(inspectCmd)

	// Address command flags
	addressCmd.Flags().String("network", "", "Derive for this network instead of the key's own")
	rootCmd.AddCommand(addressCmd)

	rootCmd.AddCommand(parseURICmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// keyReport is the printable view of a private key. The secret fields are
// filled in only when the user asked for them.
type keyReport struct {
	Network    string `json:"network"`
	Compressed bool   `json:"compressed"`
	PublicKey  string `json:"public_key"`
	CashAddr   string `json:"cash_address"`
	Legacy     string `json:"legacy_address"`
	WIF        string `json:"wif,omitempty"`
	Hex        string `json:"hex,omitempty"`
}

func buildReport(key *keys.PrivateKey, showSecret bool) keyReport {
	addr := key.Address()
	r := keyReport{
		Network:    key.Network().String(),
		Compressed: key.Compressed(),
		PublicKey:  key.PubKey().Hex(),
		CashAddr:   addr.CashAddr(),
		Legacy:     addr.Legacy(),
	}
	if showSecret {
		r.WIF = key.WIF()
		r.Hex = key.Hex()
	}
	return r
}

func printReport(r keyReport) {
	if jsonOutput {
		data, _ := json.MarshalIndent(r, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Println("Private Key")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Network:     %s\n", r.Network)
	fmt.Printf("Compressed:  %t\n", r.Compressed)
	fmt.Printf("Public Key:  %s\n", r.PublicKey)
	fmt.Printf("CashAddr:    %s\n", r.CashAddr)
	fmt.Printf("Legacy:      %s\n", r.Legacy)
	if r.WIF != "" {
		fmt.Printf("WIF:         %s\n", r.WIF)
		fmt.Printf("Hex:         %s\n", r.Hex)
	} else {
		fmt.Println("WIF:         (hidden, rerun with --show-secret)")
	}
}

func runGenerate(cmd *cobra.Command, args []string) {
	networkStr, _ := cmd.Flags().GetString("network")
	uncompressed, _ := cmd.Flags().GetBool("uncompressed")
	showSecret, _ := cmd.Flags().GetBool("show-secret")

	network, err := keys.ParseNetwork(networkStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	key, err := keys.GeneratePrivateKey(network)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if uncompressed {
		compressed := key
		key = compressed.WithCompression(false)
		compressed.Zero()
	}
	defer key.Zero()

	printReport(buildReport(key, showSecret))
}

func runInspect(cmd *cobra.Command, args []string) {
	networkStr, _ := cmd.Flags().GetString("network")
	showSecret, _ := cmd.Flags().GetBool("show-secret")

	input := ""
	if len(args) == 1 {
		input = args[0]
	} else {
		read, err := promptKey()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		input = read
	}
	input = strings.TrimSpace(input)

	var key *keys.PrivateKey
	var err error
	if looksLikeWIF(input) {
		if networkStr != "" {
			fmt.Fprintln(os.Stderr, "Error: --network cannot be combined with WIF input; the WIF string encodes its own network")
			os.Exit(1)
		}
		key, err = keys.PrivateKeyFromWIF(input)
	} else {
		network := keys.MainNet
		if networkStr != "" {
			network, err = keys.ParseNetwork(networkStr)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
		key, err = keys.PrivateKeyFromHex(input, network)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer key.Zero()

	printReport(buildReport(key, showSecret))
}

func runAddress(cmd *cobra.Command, args []string) {
	networkStr, _ := cmd.Flags().GetString("network")
	input := strings.TrimSpace(args[0])

	override := false
	network := keys.MainNet
	if networkStr != "" {
		parsed, err := keys.ParseNetwork(networkStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		network = parsed
		override = true
	}

	var key *keys.PrivateKey
	var err error
	if looksLikeWIF(input) {
		key, err = keys.PrivateKeyFromWIF(input)
	} else {
		key, err = keys.PrivateKeyFromHex(input, network)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer key.Zero()

	target := key.Network()
	if override {
		target = network
	}

	addr, err := key.PubKey().Address(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		out := map[string]interface{}{
			"network":        addr.Network().String(),
			"kind":           addr.Kind().String(),
			"cash_address":   addr.CashAddr(),
			"legacy_address": addr.Legacy(),
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Println("Address")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Network:     %s\n", addr.Network())
	fmt.Printf("Kind:        %s\n", addr.Kind())
	fmt.Printf("CashAddr:    %s\n", addr.CashAddr())
	fmt.Printf("Legacy:      %s\n", addr.Legacy())
}

func runParseURI(cmd *cobra.Command, args []string) {
	req, err := payuri.Parse(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if jsonOutput {
		out := struct {
			Address string   `json:"address"`
			Network string   `json:"network"`
			Kind    string   `json:"kind"`
			Amount  *float64 `json:"amount,omitempty"`
			Label   *string  `json:"label,omitempty"`
			Message *string  `json:"message,omitempty"`
		}{
			Address: req.Address.String(),
			Network: req.Address.Network().String(),
			Kind:    req.Address.Kind().String(),
			Amount:  req.Amount,
			Label:   req.Label,
			Message: req.Message,
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return
	}

	fmt.Println("Payment Request")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Address:     %s\n", req.Address)
	fmt.Printf("Network:     %s\n", req.Address.Network())
	fmt.Printf("Kind:        %s\n", req.Address.Kind())
	if req.Amount != nil {
		fmt.Printf("Amount:      %g\n", *req.Amount)
	}
	if req.Label != nil {
		fmt.Printf("Label:       %s\n", *req.Label)
	}
	if req.Message != nil {
		fmt.Printf("Message:     %s\n", *req.Message)
	}
}

func runVersion(cmd *cobra.Command, args []string) {
	if jsonOutput {
		out := map[string]string{"version": version}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return
	}
	fmt.Printf("bchkey version %s\n", version)
}

// looksLikeWIF reports whether input should go through the WIF decoder.
// WIF strings are exactly 51 or 52 characters; hex scalars of those exact
// lengths lose the coin toss and must be zero-padded by the caller.
func looksLikeWIF(s string) bool {
	return len(s) == 51 || len(s) == 52
}

// promptKey reads a private key from stdin. On a terminal the input is
// read with echo disabled; otherwise one line is consumed, so the command
// stays usable in pipes.
func promptKey() (string, error) {
	if term.IsTerminal(int(syscall.Stdin)) {
		fmt.Fprint(os.Stderr, "Private key (WIF or hex): ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return "", fmt.Errorf("reading key: %w", err)
		}
		fmt.Fprintln(os.Stderr)
		return string(raw), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading key from stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}
