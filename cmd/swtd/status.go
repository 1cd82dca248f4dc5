package main

import (
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"swtd/internal/providers"
	"swtd/internal/structures"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show per-channel watch time from a running daemon",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusRow struct {
	Channel      string `json:"channel"`
	TodayHMS     string `json:"today_hms"`
	ThisWeekHMS  string `json:"this_week_hms"`
	ThisMonthHMS string `json:"this_month_hms"`
	AllTimeHMS   string `json:"all_time_hms"`
}

type statusResponse struct {
	Channels []statusRow `json:"channels"`
	Totals   statusRow   `json:"totals"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	conf, err := providers.NewConfigProvider(&structures.CliFlags{ConfigPath: configPath, DebugMode: debugMode})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("http://%s:%d/channels", conf.WebServer.Host, conf.WebServer.Port)
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("daemon unreachable at %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("daemon returned status %d", resp.StatusCode)
	}

	var payload statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CHANNEL\tTODAY\tWEEK\tMONTH\tALL-TIME")
	for _, row := range payload.Channels {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", row.Channel, row.TodayHMS, row.ThisWeekHMS, row.ThisMonthHMS, row.AllTimeHMS)
	}
	t := payload.Totals
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", "total", t.TodayHMS, t.ThisWeekHMS, t.ThisMonthHMS, t.AllTimeHMS)
	return w.Flush()
}
