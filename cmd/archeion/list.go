package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/archeion"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := archeion.LinkFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Tag != "" {
		filter.Tag = &c.Tag
	}

	links, err := deps.Links.FindLinks(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", archeion.ErrorMessage(err))
		return err
	}

	if len(links) == 0 {
		fmt.Fprintln(deps.Stdout, "No links found. Use 'archeion archive' to add one.")
		return nil
	}

	for _, l := range links {
		title := l.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s", l.ID, title, l.URL)
		if len(l.Tags) > 0 {
			fmt.Fprintf(deps.Stdout, "  [%s]", strings.Join(l.Tags, ", "))
		}
		fmt.Fprintln(deps.Stdout)
	}

	return nil
}
