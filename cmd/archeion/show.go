package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/archeion"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	link, err := deps.Links.FindLinkByID(deps.Ctx, c.ID)
	if err != nil {
		if archeion.ErrorCode(err) == archeion.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: link %q not found. Use 'archeion list' to see archived links.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", archeion.ErrorMessage(err))
		}
		return err
	}

	artifacts, err := deps.Artifacts.FindArtifacts(deps.Ctx, archeion.ArtifactFilter{LinkID: &link.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", archeion.ErrorMessage(err))
		return err
	}

	out := struct {
		*archeion.Link
		Artifacts []*archeion.Artifact `json:"artifacts"`
	}{link, artifacts}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
