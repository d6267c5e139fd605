package jira

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/danielolaszy/jiralint/internal/description"
	"github.com/danielolaszy/jiralint/pkg/models"
)

// noEstimate is displayed when an issue has not been estimated.
const noEstimate = "None"

// LabelsForDisplay renders labels as links separated by ", ".
func LabelsForDisplay(labels []models.JiraLabel) string {
	links := make([]string, 0, len(labels))
	for _, label := range labels {
		links = append(links, fmt.Sprintf(`<a href="%s" title="%s">%s</a>`, label.URL, label.Name, label.Name))
	}
	return strings.Join(links, ", ")
}

// FormatEstimate returns the estimate as text, or "None" when it is missing.
func FormatEstimate(estimate *float64) string {
	if estimate == nil {
		return noEstimate
	}
	return strconv.FormatFloat(*estimate, 'f', -1, 64)
}

// DescriptionBlock renders the issue summary that is embedded in a pull request description.
func DescriptionBlock(issue models.JiraDetails) string {
	key := strings.ToUpper(issue.Key)

	var b strings.Builder
	b.WriteString("<details open>\n")
	fmt.Fprintf(&b, "  <summary><a href=\"%s\" title=\"%s\" target=\"_blank\">%s</a></summary>\n", issue.URL, key, key)
	b.WriteString("  <br />\n")
	b.WriteString("  <table>\n")
	writeRow(&b, "Summary", issue.Summary)
	writeRow(&b, "Type", fmt.Sprintf(`<img alt="%s" src="%s" /> %s`, issue.Type.Name, issue.Type.IconURL, issue.Type.Name))
	writeRow(&b, "Status", issue.Status)
	writeRow(&b, "Estimate", FormatEstimate(issue.Estimate))
	if issue.Project.Name != "" {
		writeRow(&b, "Project", fmt.Sprintf(`<a href="%s" title="%s">%s</a>`, issue.Project.URL, issue.Project.Name, issue.Project.Name))
	}
	if len(issue.Labels) > 0 {
		writeRow(&b, "Labels", LabelsForDisplay(issue.Labels))
	}
	b.WriteString("  </table>\n")
	b.WriteString("</details>")
	return b.String()
}

func writeRow(b *strings.Builder, header, value string) {
	fmt.Fprintf(b, "    <tr>\n      <th>%s</th>\n      <td>%s</td>\n    </tr>\n", header, value)
}

// PRDescription merges the rendered issue block into an existing pull request body.
// An empty body yields the block alone.
func PRDescription(body string, issue models.JiraDetails) string {
	return description.Merge(body, DescriptionBlock(issue))
}

// NoIDComment is posted when no issue key could be found in the branch name.
func NoIDComment(branch string) string {
	return fmt.Sprintf(`<p>:mag: A JIRA issue key is missing from your branch name.</p>
<p>Your branch: <code>%s</code></p>
<p>Branch names must start with the issue key, optionally after one prefix segment, for example <code>ABC-123-short-description</code> or <code>feature/ABC-123-short-description</code>.</p>
<hr />
<p>Rename the branch and open the pull request again so it can be linked to its JIRA issue.</p>`, branch)
}

// InvalidStatusComment is posted when the issue is not in one of the allowed statuses.
func InvalidStatusComment(status string, allowed []string) string {
	return fmt.Sprintf(`<p>:broken_heart: The linked JIRA issue is not in one of the allowed statuses.</p>
<table>
  <tr>
    <th>Detected status</th>
    <td>%s</td>
    <td>:x:</td>
  </tr>
  <tr>
    <th>Allowed statuses</th>
    <td>%s</td>
    <td>:heavy_check_mark:</td>
  </tr>
</table>
<p>Move the issue to one of the allowed statuses and re-run the check.</p>`, status, strings.Join(allowed, ", "))
}

// HugePRComment is posted when a pull request adds more lines than the configured threshold.
func HugePRComment(additions, threshold int) string {
	return fmt.Sprintf(`<p>This pull request is too large: it adds <strong>%d</strong> lines, the limit is <strong>%d</strong>.</p>
<p>Large changes are hard to review. Consider splitting it into smaller pull requests.</p>`, additions, threshold)
}

// IsHumongousPR reports whether additions exceed a positive threshold.
func IsHumongousPR(additions, threshold int) bool {
	return threshold > 0 && additions > threshold
}

// IsIssueStatusValid reports whether the issue may be merged in its current status.
// When validation is disabled every status is accepted. Otherwise the status must
// match one of the allowed statuses exactly.
func IsIssueStatusValid(enabled bool, allowed []string, issue models.JiraDetails) bool {
	if !enabled {
		return true
	}
	return slices.Contains(allowed, issue.Status)
}

// PRLabels returns the labels to put on a pull request for the given issue:
// the project name and the issue type name.
func PRLabels(issue models.JiraDetails) []string {
	var labels []string
	for _, name := range []string{issue.Project.Name, issue.Type.Name} {
		name = strings.TrimSpace(name)
		if name == "" || slices.Contains(labels, name) {
			continue
		}
		labels = append(labels, name)
	}
	return labels
}
