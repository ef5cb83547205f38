package main

import (
	"fmt"

	"github.com/spf13/cobra"

	notifydbus "github.com/hakkabon/StatusView/internal/dbus"
)

var sendOpts struct {
	appName string
	urgency string
	sound   string
	expire  int32
}

var sendCmd = &cobra.Command{
	Use:   "send <summary> [body]",
	Short: "Send a notification to the banner daemon",
	Long: `Send a notification to whatever server owns the
org.freedesktop.Notifications bus name and print the assigned ID.

Examples:
  # Simple banner with the daemon's default timeout
  statusview send "Build finished"

  # Critical banner that stays until dismissed
  statusview send --urgency critical "Disk almost full" "less than 1 GiB left on /"

  # Banner with a sound cue, hidden after 1.5 seconds
  statusview send --sound ~/sounds/ping.ogg --expire 1500 "Ping"`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVar(&sendOpts.appName, "app-name", "statusview",
		"Application name reported to the server")
	sendCmd.Flags().StringVar(&sendOpts.urgency, "urgency", "normal",
		"Urgency level (low, normal, critical)")
	sendCmd.Flags().StringVar(&sendOpts.sound, "sound", "",
		"Sound file to play when the banner shows")
	sendCmd.Flags().Int32Var(&sendOpts.expire, "expire", -1,
		"Expire timeout in milliseconds (-1 server default, 0 never)")
}

func runSend(cmd *cobra.Command, args []string) error {
	body := ""
	if len(args) == 2 {
		body = args[1]
	}

	urgency, err := parseUrgency(sendOpts.urgency)
	if err != nil {
		return err
	}

	id, err := notifydbus.Send(args[0], body, notifydbus.SendOptions{
		AppName:   sendOpts.appName,
		Urgency:   urgency,
		SoundFile: sendOpts.sound,
		Expire:    sendOpts.expire,
	})
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}

	fmt.Println(id)
	return nil
}

func parseUrgency(s string) (int, error) {
	switch s {
	case "low":
		return notifydbus.UrgencyLow, nil
	case "normal":
		return notifydbus.UrgencyNormal, nil
	case "critical":
		return notifydbus.UrgencyCritical, nil
	default:
		return 0, fmt.Errorf("invalid urgency %q: must be low, normal or critical", s)
	}
}
