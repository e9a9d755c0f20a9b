package client

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/KirkDiggler/pokedex-api/internal/entities"
	"github.com/KirkDiggler/pokedex-api/internal/handlers/pokedex/v1alpha1"
)

// renderSession prints the loading line, the grid, or the failure. A failed
// session is also returned as an error so the command exits non-zero.
func renderSession(w io.Writer, view *v1alpha1.SessionView) error {
	switch entities.SessionStatus(view.Status) {
	case entities.SessionPending:
		_, err := fmt.Fprintf(w, "Session %s is loading...\n", view.SessionID)
		return err
	case entities.SessionFailed:
		_, _ = fmt.Fprintf(w, "Session %s failed (%s): %s\n", view.SessionID, view.ErrorCode, view.Reason)
		return fmt.Errorf("catalog load failed: %s", view.ErrorCode)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tTYPES\tABILITIES\tSTATS\tIMAGE")
	for i, p := range view.Pokemon {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			p.Name,
			strings.Join(p.Types, ","),
			strings.Join(p.Abilities, ","),
			formatStats(p.Stats),
			orDash(p.ImageURL),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%d pokemon in session %s\n", len(view.Pokemon), view.SessionID)
	return err
}

func formatStats(stats []v1alpha1.StatView) string {
	parts := make([]string, len(stats))
	for i, s := range stats {
		parts[i] = fmt.Sprintf("%s=%d", s.Name, s.Value)
	}
	return strings.Join(parts, " ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
