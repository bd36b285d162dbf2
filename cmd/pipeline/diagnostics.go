package main

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/meeting-flow/internal/provider"
	"github.com/nguyentantai21042004/meeting-flow/internal/store"
)

func newCheckKeysCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "check-keys",
		Short: "Show which extraction providers are configured",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			p := cfg.Providers

			var rows [][]string
			if len(p.Gemini.APIKeys) == 0 {
				rows = append(rows, []string{"gemini", "missing", "set GEMINI_API_KEY (free key at https://aistudio.google.com/app/apikey)"})
			}
			for i, key := range p.Gemini.APIKeys {
				name := "gemini"
				if i > 0 {
					name = fmt.Sprintf("gemini#%d", i+1)
				}
				rows = append(rows, []string{name, "configured", maskKey(key) + " model " + p.Gemini.Model})
			}

			switch {
			case p.OpenAI.APIKey == "":
				rows = append(rows, []string{"openai", "missing", "set OPENAI_API_KEY (https://platform.openai.com/account/api-keys)"})
			case !strings.HasPrefix(p.OpenAI.APIKey, "sk-"):
				rows = append(rows, []string{"openai", "suspicious", maskKey(p.OpenAI.APIKey) + " does not start with sk-"})
			default:
				rows = append(rows, []string{"openai", "configured", maskKey(p.OpenAI.APIKey) + " model " + p.OpenAI.Model})
			}

			if p.Ollama.Disabled {
				rows = append(rows, []string{"ollama", "disabled", ""})
			} else {
				probeCtx, cancel := context.WithTimeout(cmd.Context(), 2*time.Second)
				models, err := provider.OllamaModels(probeCtx, p.Ollama.ServerURL)
				cancel()
				if err != nil {
					rows = append(rows, []string{"ollama", "unreachable", fmt.Sprintf("start Ollama at %s, then: ollama pull %s", p.Ollama.ServerURL, p.Ollama.Model)})
				} else {
					rows = append(rows, []string{"ollama", "running", fmt.Sprintf("%d models: %s", len(models), strings.Join(models, ", "))})
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"Provider", "Status", "Detail"}, rows, nil))
			if len(p.Gemini.APIKeys) == 0 && p.OpenAI.APIKey == "" {
				fmt.Fprintln(out, "No cloud keys configured. Quickest fix: create a free Gemini key and set GEMINI_API_KEY in .env")
			}
			return nil
		},
	}
}

func newInspectDestinationsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect-destinations",
		Short: "Check every destination database has the properties tasks are written to",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireSync(); err != nil {
				return err
			}

			client := store.NewNotionClient(cfg.Notion)
			required := client.RequiredProperties()

			byID := make(map[string][]string)
			for name, id := range cfg.Destinations() {
				byID[id] = append(byID[id], name)
			}

			var rows [][]string
			for _, id := range sortedKeys(byID) {
				names := byID[id]
				sort.Strings(names)
				label := strings.Join(names, ", ")

				schema, err := client.InspectSchema(cmd.Context(), id)
				if err != nil {
					rows = append(rows, []string{label, id, "error: " + err.Error()})
					continue
				}
				problems := store.SchemaProblems(schema, required)
				if len(problems) == 0 {
					rows = append(rows, []string{label, id, fmt.Sprintf("ok (%d properties)", len(schema))})
					continue
				}
				rows = append(rows, []string{label, id, strings.Join(problems, "; ")})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Destination", "Database", "Schema"}, rows, nil))
			return nil
		},
	}
}

// maskKey shows enough of a secret to tell keys apart.
func maskKey(key string) string {
	if len(key) <= 14 {
		return fmt.Sprintf("(%d chars)", len(key))
	}
	return fmt.Sprintf("%s...%s (%d chars)", key[:10], key[len(key)-4:], len(key))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
