// main.go — scenario-cli: a thin command-line client for scenariomcp.
// Translates a flat "--flag value" argument list into an MCP tool call
// against a scenariomcp server spawned as a subprocess over stdio, the
// same split gasoline-cmd uses between its CLI and its MCP server.
//
// Usage: scenario-cli <tool> [--flag value ...] [--format human|json]
//
// Exit codes:
//
//	0 = success
//	1 = error (tool call failed or returned isError)
//	2 = usage error (missing/invalid arguments)
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set at build time via -ldflags.
var version = "0.1.0"

const usageText = `scenario-cli — command-line client for scenariomcp

Usage:
  scenario-cli <tool> [--flag value ...] [--format human|json]

Tools:
  enable-recorder      list-scenarios       search-scenarios
  get-scenario-info    delete-scenario      import-scenario
  export-scenario      validate-scenarios   diff-scenarios
  execute-scenario

Global Flags:
  --format <human|json>   Output format (default: human)
  --server <path>         Path to the scenariomcp binary (default: scenariomcp)
  --version               Show version
  --help                  Show this help

Examples:
  scenario-cli list-scenarios
  scenario-cli get-scenario-info --name checkout
  scenario-cli execute-scenario --name checkout --parameters '{"sku":"abc"}'
  scenario-cli export-scenario --name checkout --format json > checkout.json
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usageText)
		return 2
	}

	for _, arg := range args {
		if arg == "--version" || arg == "-v" {
			fmt.Printf("scenario-cli %s\n", version)
			return 0
		}
		if arg == "--help" || arg == "-h" || arg == "help" {
			fmt.Print(usageText)
			return 0
		}
	}

	tool := args[0]
	remaining := args[1:]

	format, remaining := extractFlag(remaining, "--format")
	if format == "" {
		format = "human"
	}
	if format != "human" && format != "json" {
		fmt.Fprintf(os.Stderr, "Error: --format must be human or json, got %q\n", format)
		return 2
	}

	serverPath, remaining := extractFlag(remaining, "--server")
	if serverPath == "" {
		serverPath = "scenariomcp"
	}

	toolArgs, err := parseToolArgs(remaining)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	ctx := context.Background()
	session, cleanup, err := connect(ctx, serverPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: connect to scenariomcp: %v\n", err)
		return 1
	}
	defer cleanup()

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: tool, Arguments: toolArgs})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: call %s: %v\n", tool, err)
		return 1
	}

	printResult(format, result)
	if result.IsError {
		return 1
	}
	return 0
}

// connect spawns the scenariomcp server as a subprocess and opens an MCP
// client session over its stdio, the same CommandTransport shape
// intelligencedev-manifold's mcpclient.Manager uses for its own local
// MCP servers.
func connect(ctx context.Context, serverPath string) (*sdkmcp.ClientSession, func(), error) {
	cmd := exec.Command(serverPath)
	cmd.Stderr = os.Stderr

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "scenario-cli", Version: version}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		return nil, nil, err
	}
	return session, func() { _ = session.Close() }, nil
}

// parseToolArgs turns a "--flag value" list into tool call arguments.
// Each value is tried as JSON first (so booleans, numbers and objects come
// through typed) and falls back to a plain string.
func parseToolArgs(args []string) (map[string]any, error) {
	out := map[string]any{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "--") {
			return nil, fmt.Errorf("unexpected argument %q", arg)
		}
		name := strings.TrimPrefix(arg, "--")
		if i+1 >= len(args) {
			return nil, fmt.Errorf("flag --%s requires a value", name)
		}
		i++
		out[name] = parseValue(args[i])
	}
	return out, nil
}

func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	return raw
}

// extractFlag pulls the first occurrence of "--name value" out of args,
// returning its value and the remaining args with that pair removed.
func extractFlag(args []string, name string) (string, []string) {
	for i, arg := range args {
		if arg == name && i+1 < len(args) {
			rest := append(append([]string{}, args[:i]...), args[i+2:]...)
			return args[i+1], rest
		}
	}
	return "", args
}

func printResult(format string, result *sdkmcp.CallToolResult) {
	if format == "json" {
		texts := make([]string, 0, len(result.Content))
		for _, c := range result.Content {
			if tc, ok := c.(*sdkmcp.TextContent); ok {
				texts = append(texts, tc.Text)
			}
		}
		out := map[string]any{"is_error": result.IsError, "content": strings.Join(texts, "\n")}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Println(string(data))
		return
	}

	for _, c := range result.Content {
		if tc, ok := c.(*sdkmcp.TextContent); ok {
			fmt.Println(tc.Text)
		}
	}
}
