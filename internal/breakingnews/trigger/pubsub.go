// Package trigger starts breaking news runs from Pub/Sub messages, so an
// external scheduler (Cloud Scheduler) can drive the job.
package trigger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"newspulse-backend/internal/breakingnews"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// Runner is the part of breakingnews.Runner the trigger needs.
type Runner interface {
	Run(ctx context.Context, trigger string) (*breakingnews.JobReport, error)
}

// TriggerMessage is the optional JSON body of a trigger message.
type TriggerMessage struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
}

type Service struct {
	pubsubClient *pubsub.Client
	runner       Runner
	topicName    string
	subName      string
	runTimeout   time.Duration
}

// NewService connects to Pub/Sub. topicName may be a full resource name.
func NewService(ctx context.Context, projectID, topicName string, runner Runner, runTimeout time.Duration, opts ...option.ClientOption) (*Service, error) {
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}

	topicName = ShortTopicName(topicName)
	return &Service{
		pubsubClient: client,
		runner:       runner,
		topicName:    topicName,
		subName:      topicName + "-sub", // Convention: topic-sub
		runTimeout:   runTimeout,
	}, nil
}

// ShortTopicName strips a "projects/<p>/topics/" prefix.
func ShortTopicName(topic string) string {
	if parts := strings.Split(topic, "/"); len(parts) > 1 {
		return parts[len(parts)-1]
	}
	return topic
}

// Start blocks receiving messages until ctx is cancelled.
func (s *Service) Start(ctx context.Context) error {
	log.Printf("[PubSub] Starting breaking news trigger, topic: %s, subscription: %s", s.topicName, s.subName)

	sub, err := s.ensureSubscription(ctx)
	if err != nil {
		return err
	}

	// One run at a time; the lease is extended while a run is in flight.
	sub.ReceiveSettings.NumGoroutines = 1
	sub.ReceiveSettings.MaxOutstandingMessages = 1
	if s.runTimeout > 0 {
		sub.ReceiveSettings.MaxExtension = s.runTimeout + time.Minute
	}

	log.Printf("[PubSub] Listening for triggers on subscription: %s", s.subName)
	err = sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		if s.handle(ctx, msg.Data) {
			msg.Ack()
		} else {
			msg.Nack()
		}
	})
	if err != nil {
		return fmt.Errorf("pubsub receive: %w", err)
	}
	return nil
}

func (s *Service) Close() error {
	return s.pubsubClient.Close()
}

func (s *Service) ensureSubscription(ctx context.Context) (*pubsub.Subscription, error) {
	sub := s.pubsubClient.Subscription(s.subName)
	exists, err := sub.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check subscription %s: %w", s.subName, err)
	}
	if exists {
		return sub, nil
	}

	topic := s.pubsubClient.Topic(s.topicName)
	topicExists, err := topic.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check topic %s: %w", s.topicName, err)
	}
	if !topicExists {
		return nil, fmt.Errorf("topic %s does not exist, cannot create subscription", s.topicName)
	}

	sub, err = s.pubsubClient.CreateSubscription(ctx, s.subName, pubsub.SubscriptionConfig{
		Topic:       topic,
		AckDeadline: 60 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("create subscription %s: %w", s.subName, err)
	}
	log.Printf("[PubSub] Created subscription: %s", s.subName)
	return sub, nil
}

// handle runs the job once and reports whether the message should be acked.
// Only a run-fatal failure is nacked, so Pub/Sub redelivers it.
func (s *Service) handle(ctx context.Context, data []byte) bool {
	var msg TriggerMessage
	if len(data) > 0 {
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[PubSub] Trigger payload is not JSON, running anyway: %v", err)
		}
	}
	log.Printf("[PubSub] Breaking news trigger received (source=%q reason=%q)", msg.Source, msg.Reason)

	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	_, err := s.runner.Run(ctx, breakingnews.TriggerPubSub)
	switch {
	case err == nil:
		return true
	case errors.Is(err, breakingnews.ErrRunInProgress):
		log.Println("[PubSub] Run already in progress, dropping trigger")
		return true
	default:
		log.Printf("[PubSub] Breaking news run failed, message will be redelivered: %v", err)
		return false
	}
}
