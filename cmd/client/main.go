// Package main is todoctl, a command-line client for the to-do API.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/atinyakov/todokeeper/internal/client"
	"github.com/atinyakov/todokeeper/internal/models"
	"github.com/urfave/cli/v3"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "todoctl:", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "todoctl",
		Usage:   "Manage to-do items on a todokeeper server",
		Version: fmt.Sprintf("%s (built %s)", orNA(version), orNA(buildDate)),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Usage:   "server base URL",
				Value:   "http://localhost:8080",
				Sources: cli.EnvVars("TODO_URL"),
			},
			&cli.StringFlag{
				Name:    "user",
				Aliases: []string{"u"},
				Usage:   "Basic auth username",
				Value:   "admin",
				Sources: cli.EnvVars("TODO_USER"),
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Basic auth password",
				Sources: cli.EnvVars("TODO_PASSWORD"),
			},
			&cli.StringFlag{
				Name:  "ca",
				Usage: "PEM file with the server certificate to trust",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Create a to-do item",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "item title", Required: true},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "item description"},
					&cli.StringFlag{Name: "due", Usage: "due date (YYYY-MM-DD)", Required: true},
				},
				Action: addAction,
			},
			{
				Name:   "list",
				Usage:  "List all to-do items",
				Action: listAction,
			},
			{
				Name:      "get",
				Usage:     "Show one to-do item",
				ArgsUsage: "<id>",
				Action:    withID(func(ctx context.Context, c *client.Client, id int64) (any, error) { return c.Get(ctx, id) }),
			},
			{
				Name:      "update",
				Usage:     "Change fields of a to-do item",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "new title"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "new description"},
					&cli.StringFlag{Name: "due", Usage: "new due date (YYYY-MM-DD)"},
					&cli.BoolFlag{Name: "completed", Usage: "completion state"},
				},
				Action: updateAction,
			},
			{
				Name:      "complete",
				Usage:     "Mark a to-do item as completed",
				ArgsUsage: "<id>",
				Action:    withID(func(ctx context.Context, c *client.Client, id int64) (any, error) { return c.Complete(ctx, id) }),
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a to-do item",
				ArgsUsage: "<id>",
				Action: withID(func(ctx context.Context, c *client.Client, id int64) (any, error) {
					msg, err := c.Delete(ctx, id)
					return models.MessageResponse{Message: msg}, err
				}),
			},
		},
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func newClient(cmd *cli.Command) (*client.Client, error) {
	var opts []client.Option
	if ca := cmd.String("ca"); ca != "" {
		opts = append(opts, client.WithCAFile(ca))
	}
	return client.New(cmd.String("url"), cmd.String("user"), cmd.String("password"), opts...)
}

func printJSON(cmd *cli.Command, v any) error {
	enc := json.NewEncoder(cmd.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(cmd *cli.Command) (int64, error) {
	arg := cmd.Args().First()
	if arg == "" {
		return 0, fmt.Errorf("missing <id> argument")
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func withID(fn func(ctx context.Context, c *client.Client, id int64) (any, error)) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		id, err := parseID(cmd)
		if err != nil {
			return err
		}
		c, err := newClient(cmd)
		if err != nil {
			return err
		}
		out, err := fn(ctx, c, id)
		if err != nil {
			return err
		}
		return printJSON(cmd, out)
	}
}

func addAction(ctx context.Context, cmd *cli.Command) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	req := models.CreateTodoRequest{
		Title:   models.Some(cmd.String("title")),
		DueDate: models.Some(cmd.String("due")),
	}
	if cmd.IsSet("description") {
		req.Description = models.Some(cmd.String("description"))
	}
	todo, err := c.Create(ctx, req)
	if err != nil {
		return err
	}
	return printJSON(cmd, todo)
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	todos, err := c.List(ctx)
	if err != nil {
		return err
	}
	return printJSON(cmd, todos)
}

func updateAction(ctx context.Context, cmd *cli.Command) error {
	id, err := parseID(cmd)
	if err != nil {
		return err
	}
	var req models.UpdateTodoRequest
	if cmd.IsSet("title") {
		req.Title = models.Some(cmd.String("title"))
	}
	if cmd.IsSet("description") {
		req.Description = models.Some(cmd.String("description"))
	}
	if cmd.IsSet("due") {
		req.DueDate = models.Some(cmd.String("due"))
	}
	if cmd.IsSet("completed") {
		req.Completed = models.Some(cmd.Bool("completed"))
	}

	c, err := newClient(cmd)
	if err != nil {
		return err
	}
	todo, err := c.Update(ctx, id, req)
	if err != nil {
		return err
	}
	return printJSON(cmd, todo)
}
