package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jonathan/optihire/internal/builder"
	"github.com/spf13/cobra"
)

var draftAddCmd = &cobra.Command{
	Use:   "add <experience|education|skill|project|certification>",
	Short: "Add an entry to a draft section",
	Args:  cobra.ExactArgs(1),
	RunE:  runDraftAdd,
}

var draftRemoveCmd = &cobra.Command{
	Use:   "remove <section> <entry-id>",
	Short: "Remove an entry from a draft section",
	Args:  cobra.ExactArgs(2),
	RunE:  runDraftRemove,
}

var draftMoveCmd = &cobra.Command{
	Use:   "move <section> <entry-id> <position>",
	Short: "Move an entry to a new position in its section",
	Args:  cobra.ExactArgs(3),
	RunE:  runDraftMove,
}

var (
	entryCompany string
	entryTitle   string
	entryStart   string
	entryEnd     string
	entryCurrent bool
	entryText    string
	entrySchool  string
	entryDegree  string
	entryField   string
	entryName    string
	entryLevel   string
	entryOrg     string
	entryURL     string
)

func init() {
	draftAddCmd.Flags().StringVar(&entryCompany, "company", "", "Company name (experience)")
	draftAddCmd.Flags().StringVar(&entryTitle, "title", "", "Job title (experience) or role (project)")
	draftAddCmd.Flags().StringVar(&entryStart, "start", "", "Start date, YYYY-MM-DD")
	draftAddCmd.Flags().StringVar(&entryEnd, "end", "", "End date, YYYY-MM-DD")
	draftAddCmd.Flags().BoolVar(&entryCurrent, "current", false, "Entry is ongoing")
	draftAddCmd.Flags().StringVar(&entryText, "description", "", "Free-text description")
	draftAddCmd.Flags().StringVar(&entrySchool, "school", "", "Institution name (education)")
	draftAddCmd.Flags().StringVar(&entryDegree, "degree", "", "Degree type (education)")
	draftAddCmd.Flags().StringVar(&entryField, "field", "", "Field of study (education)")
	draftAddCmd.Flags().StringVar(&entryName, "name", "", "Skill, project, or certification name")
	draftAddCmd.Flags().StringVar(&entryLevel, "level", "", "Proficiency level (skill)")
	draftAddCmd.Flags().StringVar(&entryOrg, "org", "", "Issuing organization (certification)")
	draftAddCmd.Flags().StringVar(&entryURL, "url", "", "Project or credential URL")

	draftCmd.AddCommand(draftAddCmd)
	draftCmd.AddCommand(draftRemoveCmd)
	draftCmd.AddCommand(draftMoveCmd)
}

func runDraftAdd(cmd *cobra.Command, args []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}
	engine, err := openExistingDraft(env)
	if err != nil {
		return err
	}

	var id string
	var applyErr error
	engine.Apply(func(d *builder.Document) {
		switch args[0] {
		case "experience":
			if entryCompany == "" || entryTitle == "" {
				applyErr = fmt.Errorf("--company and --title are required for experience entries")
				return
			}
			id = d.AddExperience(builder.ExperienceEntry{
				CompanyName: entryCompany,
				JobTitle:    entryTitle,
				StartDate:   entryStart,
				EndDate:     entryEnd,
				IsCurrent:   entryCurrent,
				Description: entryText,
			})
		case "education":
			if entrySchool == "" {
				applyErr = fmt.Errorf("--school is required for education entries")
				return
			}
			id = d.AddEducation(builder.EducationEntry{
				InstitutionName: entrySchool,
				DegreeType:      entryDegree,
				FieldOfStudy:    entryField,
				StartDate:       entryStart,
				EndDate:         entryEnd,
				IsCurrent:       entryCurrent,
			})
		case "skill":
			if entryName == "" {
				applyErr = fmt.Errorf("--name is required for skill entries")
				return
			}
			id = d.AddSkill(builder.SkillEntry{
				SkillName:        entryName,
				ProficiencyLevel: entryLevel,
			})
		case "project":
			if entryName == "" {
				applyErr = fmt.Errorf("--name is required for project entries")
				return
			}
			id = d.AddProject(builder.ProjectEntry{
				ProjectName: entryName,
				Role:        entryTitle,
				Description: entryText,
				ProjectURL:  entryURL,
				StartDate:   entryStart,
				EndDate:     entryEnd,
				IsCurrent:   entryCurrent,
			})
		case "certification":
			if entryName == "" {
				applyErr = fmt.Errorf("--name is required for certification entries")
				return
			}
			id = d.AddCertification(builder.CertificationEntry{
				CertificationName:   entryName,
				IssuingOrganization: entryOrg,
				CredentialURL:       entryURL,
				IssueDate:           entryStart,
				ExpiryDate:          entryEnd,
			})
		default:
			applyErr = fmt.Errorf("unknown section %q", args[0])
		}
	})
	if applyErr != nil {
		_ = engine.Close()
		return applyErr
	}

	if err := engine.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Added %s entry %s\n", args[0], id)
	return nil
}

func runDraftRemove(cmd *cobra.Command, args []string) error {
	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}
	engine, err := openExistingDraft(env)
	if err != nil {
		return err
	}

	removed := false
	engine.Apply(func(d *builder.Document) {
		switch args[0] {
		case "experience":
			removed = d.RemoveExperience(args[1])
		case "education":
			removed = d.RemoveEducation(args[1])
		case "skill":
			removed = d.RemoveSkill(args[1])
		case "project":
			removed = d.RemoveProject(args[1])
		case "certification":
			removed = d.RemoveCertification(args[1])
		}
	})
	if !removed {
		_ = engine.Close()
		return fmt.Errorf("no %s entry with id %s", args[0], args[1])
	}

	if err := engine.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Removed %s entry %s\n", args[0], args[1])
	return nil
}

func runDraftMove(cmd *cobra.Command, args []string) error {
	toIndex, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("position must be a number: %q", args[2])
	}

	env, err := newAppEnv(cmd)
	if err != nil {
		return err
	}
	engine, err := openExistingDraft(env)
	if err != nil {
		return err
	}

	moved := false
	engine.Apply(func(d *builder.Document) {
		switch args[0] {
		case "experience":
			moved = d.MoveExperience(args[1], toIndex)
		case "education":
			moved = d.MoveEducation(args[1], toIndex)
		case "skill":
			moved = d.MoveSkill(args[1], toIndex)
		case "project":
			moved = d.MoveProject(args[1], toIndex)
		case "certification":
			moved = d.MoveCertification(args[1], toIndex)
		}
	})
	if !moved {
		_ = engine.Close()
		return fmt.Errorf("no %s entry with id %s", args[0], args[1])
	}

	if err := engine.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Moved %s entry %s to position %d\n", args[0], args[1], toIndex)
	return nil
}
