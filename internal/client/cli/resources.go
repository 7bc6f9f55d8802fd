package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/labjournal/labctl/internal/client/models"
)

func parseID(args []string) (int64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// Experiments lists experiments.
func (a *App) Experiments(ctx context.Context) error {
	items, err := a.api.Experiments(ctx, nil)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	for _, e := range items {
		printlnFn(fmt.Sprintf("#%d [%s/%s] %s", e.ID, e.Status, e.Priority, e.Title))
	}
	return nil
}

// ShowExperiment prints one experiment with its comments.
func (a *App) ShowExperiment(ctx context.Context, args []string) error {
	id, ok := parseID(args)
	if !ok {
		printlnFn("Usage: experiment <id>")
		return nil
	}

	e, err := a.api.Experiment(ctx, id)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("#%d %s", e.ID, e.Title))
	printlnFn("  status:", string(e.Status), " priority:", string(e.Priority))
	printlnFn("  objective:", e.Objective)

	comments, err := a.api.Comments(ctx, id)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	for _, c := range comments {
		author := ""
		if c.Author != nil {
			author = c.Author.Username
		}
		printlnFn(fmt.Sprintf("  [%s] %s: %s", c.CreatedAt, author, c.Content))
	}
	return nil
}

// Steps lists the steps of an experiment.
func (a *App) Steps(ctx context.Context, args []string) error {
	id, ok := parseID(args)
	if !ok {
		printlnFn("Usage: steps <experiment id>")
		return nil
	}

	steps, err := a.api.Steps(ctx, id)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	for _, s := range steps {
		mark := " "
		if s.IsCompleted {
			mark = "x"
		}
		printlnFn(fmt.Sprintf("  [%s] %d. %s", mark, s.StepNumber, s.Title))
	}
	return nil
}

// Protocols lists protocols.
func (a *App) Protocols(ctx context.Context) error {
	items, err := a.api.Protocols(ctx, nil)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	for _, p := range items {
		printlnFn(fmt.Sprintf("#%d [%s] %s v%s (%s)", p.ID, p.Status, p.Title, p.Version, p.Category))
	}
	return nil
}

// ShowProtocol prints one protocol.
func (a *App) ShowProtocol(ctx context.Context, args []string) error {
	id, ok := parseID(args)
	if !ok {
		printlnFn("Usage: protocol <id>")
		return nil
	}

	p, err := a.api.Protocol(ctx, id)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("#%d %s v%s", p.ID, p.Title, p.Version))
	printlnFn("  category:", p.Category, " status:", string(p.Status))
	printlnFn("  " + p.Description)
	return nil
}

// Versions lists the revision history of a protocol.
func (a *App) Versions(ctx context.Context, args []string) error {
	id, ok := parseID(args)
	if !ok {
		printlnFn("Usage: versions <protocol id>")
		return nil
	}

	versions, err := a.api.Versions(ctx, id)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	for _, v := range versions {
		printlnFn(fmt.Sprintf("  v%d (%s): %s", v.VersionNumber, v.CreatedAt, v.Changes))
	}
	return nil
}

// Users lists user records.
func (a *App) Users(ctx context.Context) error {
	users, err := a.api.Users(ctx, nil)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	for _, u := range users {
		verified := ""
		if u.IsVerified {
			verified = " (verified)"
		}
		printlnFn(fmt.Sprintf("#%d %s <%s> %s%s", u.ID, u.Username, u.Email, u.Role, verified))
	}
	return nil
}

// Files lists stored files.
func (a *App) Files(ctx context.Context) error {
	files, err := a.api.Files(ctx, nil)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	for _, f := range files {
		printlnFn(fmt.Sprintf("#%d %s (%d bytes)", f.ID, f.Filename, f.FileSize))
	}
	return nil
}

// Search runs a full-text search over stored files.
func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: search <query>")
		return nil
	}

	files, err := a.api.SearchFiles(ctx, strings.Join(args, " "))
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	for _, f := range files {
		printlnFn(fmt.Sprintf("#%d %s (%d bytes)", f.ID, f.Filename, f.FileSize))
	}
	return nil
}

// Export downloads an analytics export and writes it next to the binary.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		printlnFn("Usage: export <csv|xlsx|pdf>")
		return nil
	}

	format := models.ExportFormat(args[0])
	data, err := a.api.Export(ctx, format, nil)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}

	name := "analytics." + args[0]
	if err := os.WriteFile(name, data, 0o600); err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	printlnFn("Saved", name, fmt.Sprintf("(%d bytes)", len(data)))
	return nil
}
