package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

const sampleKnowledge = `items:
  - id: topic-welcome
    type: topic
    title: Welcome
    description: What this site is about.
    keywords: [welcome, overview]
  - id: page-about
    type: page
    title: About us
    url: https://example.com/about
    keywords: [about, team, history]
  - id: qa-hours
    type: qa
    question: When are you open?
    answer: We are open every weekday from nine to six and on Saturday mornings.
    keywords: [hours, opening]
`

func initCmd() *cobra.Command {
	var projectName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new orbit project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(cmd, projectName)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	return cmd
}

func runInit(cmd *cobra.Command, projectName string) error {
	knowledgePath := "knowledge.yaml"
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("%s already exists", configPath)
	}
	if _, err := os.Stat(knowledgePath); err == nil {
		return fmt.Errorf("%s already exists", knowledgePath)
	}

	configContents := fmt.Sprintf(`project: %s
version: 1

knowledge:
  source: ./%s
  paths:
    - ./knowledge/
  exclude: []

relevance: {exact: 3, partial: 1, label: 2}
visibility: {floor: 50, ceiling: 60}
viewport: {zoom_min: 0.4, zoom_max: 2.5, wheel_step: 0.1}
gesture: {tap_max_ms: 200, tap_max_move_px: 8}

chat:
  provider: none
  api_key_env: GEMINI_API_KEY

log:
  level: info
`, projectName, knowledgePath)
	if err := os.WriteFile(configPath, []byte(configContents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configPath, err)
	}
	if err := os.WriteFile(knowledgePath, []byte(sampleKnowledge), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", knowledgePath, err)
	}

	cmd.Printf("Created %s and %s.\n", configPath, knowledgePath)
	return nil
}
