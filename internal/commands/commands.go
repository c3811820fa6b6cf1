// ABOUTME: Slash command registry and dispatch for the interactive chat
// ABOUTME: Provides /catalog, /clear, /exit, /export, /help, /quit, /reset and /stats

package commands

import (
	"fmt"
	"sort"
	"strings"
)

// Command represents a slash command.
type Command struct {
	Name        string
	Description string
	Execute     func(ctx *CommandContext, args string) (string, error)
}

// CommandContext provides access to chat state for commands.
type CommandContext struct {
	Catalog     string
	Description string
	Categories  int
	Messages    int

	// Callbacks. All nilable; commands report "not available" when nil.
	ClearTUI           func()
	ExitFn             func()
	Stats              func() string
	ResetStats         func()
	ExportConversation func(path string) error
}

// Registry holds all registered slash commands.
type Registry struct {
	commands map[string]*Command
	aliases  map[string]string
}

// NewRegistry creates a registry with all core commands registered.
func NewRegistry() *Registry {
	r := &Registry{
		commands: make(map[string]*Command),
		aliases:  map[string]string{"quit": "exit"},
	}
	r.registerCoreCommands()
	return r
}

// Get returns a command by name or alias.
// The second return value indicates whether the name was found.
func (r *Registry) Get(name string) (*Command, bool) {
	if target, ok := r.aliases[name]; ok {
		name = target
	}
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns all commands sorted by name for deterministic output.
func (r *Registry) List() []*Command {
	result := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Dispatch parses a "/command args" input, looks up the command, and executes it.
// Returns the command output or an error if the command is not found.
func (r *Registry) Dispatch(ctx *CommandContext, input string) (string, error) {
	input = strings.TrimSpace(input)
	if !IsCommand(input) {
		return "", fmt.Errorf("not a command: %q", input)
	}

	// Strip leading '/' and split into command name + args.
	raw := input[1:]
	parts := strings.SplitN(raw, " ", 2)
	name := parts[0]
	args := ""
	if len(parts) > 1 {
		args = strings.TrimSpace(parts[1])
	}

	cmd, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("unknown command: /%s", name)
	}
	return cmd.Execute(ctx, args)
}

// IsCommand returns true if input starts with '/'.
func IsCommand(input string) bool {
	return len(input) > 0 && input[0] == '/'
}

// registerCoreCommands adds all built-in slash commands to the registry.
func (r *Registry) registerCoreCommands() {
	core := []*Command{
		{
			Name:        "catalog",
			Description: "Show the active catalog",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				out := fmt.Sprintf("Catalog:    %s\nCategories: %d\nMessages:   %d",
					ctx.Catalog, ctx.Categories, ctx.Messages)
				if ctx.Description != "" {
					out = fmt.Sprintf("Catalog:    %s (%s)\nCategories: %d\nMessages:   %d",
						ctx.Catalog, ctx.Description, ctx.Categories, ctx.Messages)
				}
				return out, nil
			},
		},
		{
			Name:        "clear",
			Description: "Clear the screen",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.ClearTUI == nil {
					return "Clear not available.", nil
				}
				ctx.ClearTUI()
				return "Screen cleared.", nil
			},
		},
		{
			Name:        "exit",
			Description: "Exit the chat (also /quit)",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.ExitFn == nil {
					return "Exit not available.", nil
				}
				ctx.ExitFn()
				return "Goodbye.", nil
			},
		},
		{
			Name:        "export",
			Description: "Export the conversation to an HTML file",
			Execute: func(ctx *CommandContext, args string) (string, error) {
				if ctx.ExportConversation == nil {
					return "Export not available.", nil
				}
				if args == "" {
					return "Usage: /export <path>", nil
				}
				if err := ctx.ExportConversation(args); err != nil {
					return "", fmt.Errorf("export conversation: %w", err)
				}
				return fmt.Sprintf("Exported to %s.", args), nil
			},
		},
		{
			Name:        "help",
			Description: "Show available commands",
			Execute: func(_ *CommandContext, _ string) (string, error) {
				var b strings.Builder
				b.WriteString("Available commands:\n")
				for _, cmd := range r.List() {
					fmt.Fprintf(&b, "  /%-8s %s\n", cmd.Name, cmd.Description)
				}
				b.WriteString("Tab cycles the quick replies.")
				return b.String(), nil
			},
		},
		{
			Name:        "reset",
			Description: "Reset reply statistics",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.ResetStats == nil {
					return "Statistics are disabled.", nil
				}
				ctx.ResetStats()
				return "Statistics reset.", nil
			},
		},
		{
			Name:        "stats",
			Description: "Show how replies were matched",
			Execute: func(ctx *CommandContext, _ string) (string, error) {
				if ctx.Stats == nil {
					return "Statistics are disabled.", nil
				}
				return ctx.Stats(), nil
			},
		},
	}
	for _, cmd := range core {
		r.commands[cmd.Name] = cmd
	}
}
