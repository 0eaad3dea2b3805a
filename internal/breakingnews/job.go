// Package breakingnews sends each user at most one push per run with the top
// headline for their saved topic, and clears device tokens the push service rejects.
package breakingnews

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	recipientdomain "newspulse-backend/internal/recipient/domain"
	"newspulse-backend/pkg/fcm"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	BreakingMarker = "📰 Breaking: "
	FallbackBody   = "Check out this news!"
)

type JobDeps struct {
	Directory Directory
	Headlines HeadlineSource
	Push      PushGateway
	// Concurrency bounds in-flight recipients; values below 1 mean sequential.
	Concurrency int
	Locale      string
	Country     string
}

// Job holds no state between runs.
type Job struct {
	directory   Directory
	headlines   HeadlineSource
	push        PushGateway
	concurrency int
	locale      string
	country     string
}

func NewJob(deps JobDeps) *Job {
	concurrency := deps.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Job{
		directory:   deps.Directory,
		headlines:   deps.Headlines,
		push:        deps.Push,
		concurrency: concurrency,
		locale:      deps.Locale,
		country:     deps.Country,
	}
}

// Run processes every recipient once. The returned error is non-nil only when
// the directory cannot be read; the report is returned in both cases.
func (j *Job) Run(ctx context.Context) (*JobReport, error) {
	report := &JobReport{RunID: uuid.New().String(), StartedAt: time.Now()}
	log.Printf("[BreakingNews] Run %s started", report.RunID)

	recipients, err := j.directory.List(ctx)
	if err != nil {
		runErr := fmt.Errorf("%w: %v", ErrDirectoryUnavailable, err)
		report.finish(nil, runErr)
		log.Printf("[BreakingNews] %s", report.Summary())
		return report, runErr
	}

	results := make([]RecipientResult, len(recipients))
	var g errgroup.Group
	g.SetLimit(j.concurrency)
	for i, r := range recipients {
		g.Go(func() error {
			results[i] = j.process(ctx, r)
			return nil
		})
	}
	_ = g.Wait()

	report.finish(results, nil)
	log.Printf("[BreakingNews] %s", report.Summary())
	return report, nil
}

func (j *Job) process(ctx context.Context, r *recipientdomain.Recipient) RecipientResult {
	if !r.HasPreference() {
		return skipped(r.ID, ReasonNoPreference)
	}
	if !r.HasDeviceToken() {
		return skipped(r.ID, ReasonNoDeviceToken)
	}
	if err := ctx.Err(); err != nil {
		return failed(r.ID, ReasonCancelled, err)
	}

	headlines, err := j.headlines.TopHeadlines(ctx, BuildQuery(*r.Preference, j.locale, j.country))
	if err != nil {
		log.Printf("[BreakingNews] Headline fetch failed for %s: %v", r.ID, err)
		return failed(r.ID, ReasonHeadlineFetch, err)
	}
	if len(headlines) == 0 {
		return skipped(r.ID, ReasonNoHeadlines)
	}

	top := headlines[0]
	err = j.push.Send(ctx, BuildNotification(top, r.DeviceToken))
	switch {
	case err == nil:
		log.Printf("[BreakingNews] Sent %q to %s", top.Title, r.ID)
		return RecipientResult{RecipientID: r.ID, Outcome: OutcomeDelivered, Headline: top.Title}

	case errors.Is(err, ErrTokenInvalid):
		log.Printf("[BreakingNews] Token %s for %s rejected, clearing", fcm.MaskToken(r.DeviceToken), r.ID)
		res := RecipientResult{RecipientID: r.ID, Outcome: OutcomeTokenCleared, Headline: top.Title}
		if clearErr := j.directory.ClearDeviceToken(ctx, r.ID); clearErr != nil {
			log.Printf("[BreakingNews] Clearing token for %s failed: %v", r.ID, clearErr)
			res.Reason = ReasonClearFailed
			res.Err = clearErr
			res.Error = clearErr.Error()
		}
		return res

	default:
		log.Printf("[BreakingNews] Push to %s failed: %v", r.ID, err)
		res := failed(r.ID, ReasonPushFailed, err)
		res.Headline = top.Title
		return res
	}
}

// BuildQuery derives the headline query for a preference. The keyword is kept
// only when it is non-blank after trimming.
func BuildQuery(pref recipientdomain.Preference, locale, country string) HeadlineQuery {
	return HeadlineQuery{
		Category: strings.TrimSpace(pref.Category),
		Keyword:  strings.TrimSpace(pref.Keyword),
		Locale:   locale,
		Country:  country,
	}
}

func BuildNotification(h Headline, token string) Notification {
	body := h.Description
	if strings.TrimSpace(body) == "" {
		body = FallbackBody
	}
	return Notification{
		TargetToken: token,
		Title:       BreakingMarker + h.Title,
		Body:        body,
		ClickURL:    h.URL,
		ImageURL:    h.Image,
	}
}
