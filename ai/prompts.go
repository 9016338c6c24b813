package ai

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"advocate/internal/logging"

	"go.uber.org/zap"
)

//go:embed prompts/*.txt
var embeddedPrompts embed.FS

// Prompt template names
const (
	PromptIntakeAnalysis = "intake_analysis"
	PromptSearchQuery    = "search_query"
	PromptPolicySummary  = "policy_summary"
	PromptVerifySource   = "verify_source"
	PromptDemandLetter   = "demand_letter"
	PromptUserReply      = "user_reply"
)

// Global map to track initialized prompt directories (to avoid duplicate logs)
var (
	initializedDirs   = make(map[string]bool)
	initializedDirsMu sync.Mutex
)

// PromptManager loads prompt templates. Files in PromptsDir override the
// embedded copies one by one.
type PromptManager struct {
	PromptsDir string
	embedded   fs.FS
}

// NewPromptManager creates a prompt manager. An empty dir uses only the
// embedded templates.
func NewPromptManager(promptsDir string) *PromptManager {
	if promptsDir != "" {
		initializedDirsMu.Lock()
		if !initializedDirs[promptsDir] {
			initializedDirs[promptsDir] = true
			logging.Named("prompts").Info("prompt overrides enabled", zap.String("dir", promptsDir))
		}
		initializedDirsMu.Unlock()
	}

	sub, _ := fs.Sub(embeddedPrompts, "prompts")
	return &PromptManager{PromptsDir: promptsDir, embedded: sub}
}

// LoadPrompt loads a prompt template by name
func (pm *PromptManager) LoadPrompt(name string) (string, error) {
	if pm.PromptsDir != "" {
		content, err := os.ReadFile(filepath.Join(pm.PromptsDir, name+".txt"))
		if err == nil {
			return string(content), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to load prompt %s: %w", name, err)
		}
	}

	content, err := fs.ReadFile(pm.embedded, name+".txt")
	if err != nil {
		return "", fmt.Errorf("prompt template not found: %s", name)
	}
	return string(content), nil
}

// RenderPrompt replaces {PLACEHOLDER} with values. Substitution is a single
// pass, so values containing braces are inserted literally.
func (pm *PromptManager) RenderPrompt(name string, replacements map[string]string) (string, error) {
	template, err := pm.LoadPrompt(name)
	if err != nil {
		return "", err
	}

	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", replacements[k])
	}

	return strings.TrimSpace(strings.NewReplacer(pairs...).Replace(template)), nil
}

// Names lists the embedded prompt templates.
func (pm *PromptManager) Names() []string {
	matches, _ := fs.Glob(pm.embedded, "*.txt")
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(m, ".txt"))
	}
	sort.Strings(names)
	return names
}
