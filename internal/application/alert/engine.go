// Package alert implements the saved-search matching and alert fan-out
// pipeline: when a listing becomes active, find every immediate-frequency
// saved search it satisfies, persist one in-app notification per matched
// search, and attempt best-effort delivery to each distinct owner.
package alert

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gojo-homes/api/internal/application/notification"
	"github.com/gojo-homes/api/internal/domain"
	"github.com/gojo-homes/api/internal/infrastructure/email"
)

type listingStore interface {
	Get(ctx context.Context, listingID string) (*domain.Listing, error)
}

type searchStore interface {
	ListImmediateAlerts(ctx context.Context) ([]domain.SavedSearch, error)
}

type userStore interface {
	BatchGet(ctx context.Context, userIDs []string) ([]domain.User, error)
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// Engine runs the fan-out pipeline. All stages after the listing re-fetch
// are best-effort: a failure in one stage is logged and never propagated to
// the HTTP request that activated the listing.
type Engine struct {
	listings      listingStore
	searches      searchStore
	users         userStore
	notifications notification.Writer
	email         email.Sender
	sms           smsSender
	siteBaseURL   string
}

type EngineDeps struct {
	Listings      listingStore
	Searches      searchStore
	Users         userStore
	Notifications notification.Writer
	Email         email.Sender
	SMS           smsSender // optional
	SiteBaseURL   string
}

func NewEngine(deps EngineDeps) *Engine {
	return &Engine{
		listings:      deps.Listings,
		searches:      deps.Searches,
		users:         deps.Users,
		notifications: deps.Notifications,
		email:         deps.Email,
		sms:           deps.SMS,
		siteBaseURL:   deps.SiteBaseURL,
	}
}

// ListingActivated is the fire-and-forget entry point. It detaches from the
// caller's request: the pipeline runs on its own goroutine with its own
// error boundary, so the listing-creation response never waits on it and
// never observes its failures.
func (e *Engine) ListingActivated(listingID string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("alert: pipeline panic for listing %s: %v", listingID, r)
			}
		}()
		if err := e.run(context.Background(), listingID); err != nil {
			log.Printf("alert: pipeline failed for listing %s: %v", listingID, err)
		}
	}()
}

// run executes one pipeline pass against the canonical persisted listing.
// The listing is re-fetched rather than trusted from memory so the matcher
// always sees the committed document shape.
func (e *Engine) run(ctx context.Context, listingID string) error {
	l, err := e.listings.Get(ctx, listingID)
	if err != nil {
		return fmt.Errorf("fetch listing: %w", err)
	}
	if l.Status != domain.ListingStatusActive {
		return nil
	}

	searches, err := e.searches.ListImmediateAlerts(ctx)
	if err != nil {
		return fmt.Errorf("load saved searches: %w", err)
	}

	var matched []domain.SavedSearch
	for _, s := range searches {
		if !s.AlertEnabled || s.AlertFrequency != domain.FrequencyImmediate {
			continue
		}
		if Matches(s.Criteria, l) {
			matched = append(matched, s)
		}
	}
	if len(matched) == 0 {
		return nil
	}
	log.Printf("alert: listing %s matched %d saved searches", listingID, len(matched))

	recipients := e.resolveRecipients(ctx, matched)

	// Persistence and delivery are independent best-effort side channels:
	// a failed bulk insert must not stop the emails, and vice versa.
	e.persistNotifications(ctx, matched, l)
	e.dispatch(ctx, l, recipients)
	return nil
}

// resolveRecipients collects the distinct owner ids of the matched searches
// and resolves them in one bulk lookup. Owners missing from the result are
// logged and skipped; resolution failure never aborts the run.
func (e *Engine) resolveRecipients(ctx context.Context, matched []domain.SavedSearch) map[string]domain.User {
	seen := make(map[string]bool, len(matched))
	ids := make([]string, 0, len(matched))
	for _, s := range matched {
		if !seen[s.UserID] {
			seen[s.UserID] = true
			ids = append(ids, s.UserID)
		}
	}

	users, err := e.users.BatchGet(ctx, ids)
	if err != nil {
		log.Printf("alert: user lookup failed, skipping delivery: %v", err)
		return nil
	}

	recipients := make(map[string]domain.User, len(users))
	for _, u := range users {
		recipients[u.UserID] = u
	}
	for _, uid := range ids {
		if _, ok := recipients[uid]; !ok {
			log.Printf("alert: owner %s not resolved, skipping", uid)
		}
	}
	return recipients
}

// persistNotifications writes one notification per matched search in a
// single bulk insert. The matched set is iterated once, so a (search,
// listing) pair can never produce duplicates within a run.
func (e *Engine) persistNotifications(ctx context.Context, matched []domain.SavedSearch, l *domain.Listing) {
	now := time.Now().UTC()
	records := make([]domain.Notification, 0, len(matched))
	for _, s := range matched {
		records = append(records, domain.Notification{
			UserID:    s.UserID,
			Message:   notificationMessage(l),
			Category:  domain.CategoryNewListing,
			ListingID: l.ListingID,
			Readed:    0,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if err := e.notifications.CreateBatch(ctx, records); err != nil {
		log.Printf("alert: persist %d notifications for listing %s: %v", len(records), l.ListingID, err)
	}
}

// dispatch attempts delivery to each distinct recipient concurrently. Every
// attempt is independent: one recipient's transport failure is logged and
// never affects the others. One attempt, no retry.
func (e *Engine) dispatch(ctx context.Context, l *domain.Listing, recipients map[string]domain.User) {
	subject := fmt.Sprintf("New listing: %s", l.Title)
	body := fmt.Sprintf("%s\n\nView it here: %s/listings/%s", notificationMessage(l), e.siteBaseURL, l.ListingID)
	sms := fmt.Sprintf("%s %s/listings/%s", notificationMessage(l), e.siteBaseURL, l.ListingID)

	var wg sync.WaitGroup
	for _, u := range recipients {
		if u.Email == "" {
			log.Printf("alert: user %s has no email, skipping", u.UserID)
			continue
		}
		wg.Add(1)
		go func(u domain.User) {
			defer wg.Done()
			if err := e.email.SendEmail(ctx, u.Email, subject, body); err != nil {
				log.Printf("alert: email to %s failed: %v", u.UserID, err)
			}
			if e.sms != nil && u.Phone != nil && *u.Phone != "" {
				if err := e.sms.SendSMS(ctx, *u.Phone, sms); err != nil {
					log.Printf("alert: sms to %s failed: %v", u.UserID, err)
				}
			}
		}(u)
	}
	wg.Wait()
}

// notificationMessage renders the listing summary used for both the in-app
// notification and the email body.
func notificationMessage(l *domain.Listing) string {
	price := "price on request"
	if l.Price != nil {
		currency := l.Currency
		if currency == "" {
			currency = "ETB"
		}
		price = fmt.Sprintf("%.0f %s", *l.Price, currency)
	}
	return fmt.Sprintf("New %s for %s in %s (%s)", l.Type, l.Purpose, l.Location.City, price)
}
