package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Stats prints the request counters collected by the API client.
func (a *App) Stats(ctx context.Context) error {
	families, err := a.registry.Gather()
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}

	var lines []string
	for _, mf := range families {
		if mf.GetName() != "gophcatalog_api_requests_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			lines = append(lines, fmt.Sprintf("%-16s %-6s %.0f", labels["operation"], labels["status"], m.GetCounter().GetValue()))
		}
	}

	if len(lines) == 0 {
		fmt.Fprintln(a.out, "No requests yet")
		return nil
	}
	sort.Strings(lines)
	fmt.Fprintln(a.out, strings.Join(lines, "\n"))
	return nil
}
