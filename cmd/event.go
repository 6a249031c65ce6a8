package cmd

import (
	"context"
	"fmt"

	"github.com/ntsfreight/client-portal/internal/core/events"
	"github.com/ntsfreight/client-portal/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event bus debugging commands",
	Long:  `Publish sample quote lifecycle events to inspect handler behavior`,
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a sample quote event",
	Long:  `Publish a sample event of the given type (quote.submitted, quote.priced, quote.converted) through the bus`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishSampleEvent(args[0])
	},
}

var eventQuoteID string

func publishSampleEvent(eventType string) error {
	log := logger.LoggerWrapper()
	eventBus := events.NewEventBus(log)

	eventBus.Subscribe(eventType, func(ctx context.Context, event events.Event) error {
		log.Info("debug handler received event",
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"payload", event.Payload())
		return nil
	})

	var event events.Event
	switch eventType {
	case events.EventTypeQuoteSubmitted:
		event = events.NewQuoteSubmittedEvent(eventQuoteID, "company-debug", "cli", "Chicago, IL -> Dallas, TX")
	case events.EventTypeQuotePriced:
		event = events.NewQuotePricedEvent(eventQuoteID, "company-debug", "cli", "cli", 185000)
	case events.EventTypeQuoteConverted:
		event = events.NewQuoteConvertedEvent(eventQuoteID, "order-debug", "company-debug", "cli", "cli", 185000)
	default:
		return fmt.Errorf("unknown event type %q", eventType)
	}

	log.Info("publishing sample event", "event_type", eventType, "event_id", event.EventID())

	// Synchronous publish so the handler output lands before the process exits.
	return eventBus.PublishSync(context.Background(), event)
}

func init() {
	publishEventCmd.Flags().StringVar(&eventQuoteID, "quote-id", "quote-debug", "Quote id carried in the sample event")

	eventCmd.AddCommand(publishEventCmd)

	rootCmd.AddCommand(eventCmd)
}
