package main

import (
	"fmt"
	"os"

	"github.com/jonathan/optihire/internal/builder"
	"github.com/spf13/cobra"
)

var draftSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set top-level draft fields",
	Long:  "Set the draft's version name, contact details, or summary. Only flags that are provided change the draft.",
	RunE:  runDraftSet,
}

var (
	setVersionName string
	setFullName    string
	setEmail       string
	setPhone       string
	setLocation    string
	setLinkedin    string
	setGithub      string
	setPortfolio   string
	setSummary     string
	setPrimary     bool
)

func init() {
	draftSetCmd.Flags().StringVar(&setVersionName, "version-name", "", "Version name shown in the resume list")
	draftSetCmd.Flags().StringVar(&setFullName, "full-name", "", "Candidate full name")
	draftSetCmd.Flags().StringVar(&setEmail, "email", "", "Contact email")
	draftSetCmd.Flags().StringVar(&setPhone, "phone", "", "Contact phone")
	draftSetCmd.Flags().StringVar(&setLocation, "location", "", "Location")
	draftSetCmd.Flags().StringVar(&setLinkedin, "linkedin", "", "LinkedIn URL")
	draftSetCmd.Flags().StringVar(&setGithub, "github", "", "GitHub URL")
	draftSetCmd.Flags().StringVar(&setPortfolio, "portfolio", "", "Portfolio URL")
	draftSetCmd.Flags().StringVar(&setSummary, "summary", "", "Professional summary")
	draftSetCmd.Flags().BoolVar(&setPrimary, "primary", false, "Mark this version as the primary resume")

	draftCmd.AddCommand(draftSetCmd)
}

func runDraftSet(cmd *cobra.Command, _ []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}

	engine, err := openExistingDraft(env)
	if err != nil {
		return err
	}

	changed := 0
	engine.Apply(func(d *builder.Document) {
		set := func(flag string, apply func()) {
			if cmd.Flags().Changed(flag) {
				apply()
				changed++
			}
		}
		set("version-name", func() { d.VersionName = setVersionName })
		set("full-name", func() { d.Personal.FullName = setFullName })
		set("email", func() { d.Personal.Email = setEmail })
		set("phone", func() { d.Personal.Phone = setPhone })
		set("location", func() { d.Personal.Location = setLocation })
		set("linkedin", func() { d.Personal.LinkedinURL = setLinkedin })
		set("github", func() { d.Personal.GithubURL = setGithub })
		set("portfolio", func() { d.Personal.PortfolioURL = setPortfolio })
		set("summary", func() { d.Summary = setSummary })
		set("primary", func() { d.IsPrimary = setPrimary })
	})
	if changed == 0 {
		return fmt.Errorf("no fields provided; see 'optihire draft set --help'")
	}

	if err := engine.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Updated %d field(s).\n", changed)
	return nil
}
