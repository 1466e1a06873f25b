package workflow

import (
	"fmt"
	"os"
	"path/filepath"
)

// Template is the default workflow.yaml content with commented optional sections.
const Template = `# loom workflow configuration
#
# States are shown in the workflow view in the order listed, four per row.
# Each transition list is numbered: press 1-9 in the view to follow one.
# Omitted sections fall back to the built-in workflow.

initial: CREATED

states:
  - CREATED
  - READY
  - IN_PROGRESS
  - REVIEW
  - TESTING
  - DONE
  - BLOCKED
  - FOUND
  - TRIAGED
  - TO_DO
  - IN_TEST

transitions:
  CREATED: [READY]
  READY: [IN_PROGRESS, BLOCKED]
  IN_PROGRESS: [REVIEW, IN_TEST, BLOCKED]
  REVIEW: [TESTING, IN_PROGRESS]
  TESTING: [DONE, IN_PROGRESS]
  IN_TEST: [DONE, IN_PROGRESS]
  BLOCKED: [READY, IN_PROGRESS]
  DONE: [READY]
  # Bug triage path
  FOUND: [TRIAGED]
  TRIAGED: [TO_DO]
  TO_DO: [IN_PROGRESS]
`

// WriteTemplate writes the default workflow.yaml template to dir/.loom/workflow.yaml.
// Returns an error if the file already exists.
func WriteTemplate(dir string) (string, error) {
	fp := Path(dir)

	if _, err := os.Stat(fp); err == nil {
		return fp, fmt.Errorf("%s already exists", fp)
	}

	if err := os.MkdirAll(filepath.Dir(fp), 0o755); err != nil {
		return fp, fmt.Errorf("failed to create directory %s: %w", filepath.Dir(fp), err)
	}

	if err := os.WriteFile(fp, []byte(Template), 0o644); err != nil {
		return fp, fmt.Errorf("failed to write %s: %w", fp, err)
	}

	return fp, nil
}
