// Package notifier polls the event feed and surfaces events this client has
// not seen yet, like the web client's notification bell.
package notifier

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
	_ "time/tzdata"

	"uni-meet/pkg/logger"
	"uni-meet/pkg/utils"

	"go.uber.org/zap"
)

const (
	DefaultInterval = time.Minute
	DefaultMaxItems = 15
	DefaultTimeZone = "Europe/Istanbul"

	// 俱乐部名称缺失时的占位
	unknownClub = "Club"
	timeLayout  = "02.01.2006 15:04"
)

// Notification is one newly seen event.
type Notification struct {
	ID         string
	Title      string
	ClubName   string
	StartAt    time.Time
	When       string
	ReceivedAt time.Time
}

func (n Notification) String() string {
	return fmt.Sprintf("%q — %s (starts %s)", n.Title, n.ClubName, n.When)
}

type Options struct {
	Interval time.Duration
	MaxItems int
	TimeZone string
	// OnNotify is called with each non-empty batch of new notifications.
	OnNotify func([]Notification)
}

type Notifier struct {
	feed     FeedSource
	seen     SeenStore
	loc      *time.Location
	interval time.Duration
	maxItems int
	onNotify func([]Notification)
	log      *zap.Logger
	now      func() time.Time

	mu     sync.Mutex
	items  []Notification
	unread int
}

func New(feed FeedSource, seen SeenStore, opts Options) (*Notifier, error) {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.MaxItems <= 0 {
		opts.MaxItems = DefaultMaxItems
	}
	if opts.TimeZone == "" {
		opts.TimeZone = DefaultTimeZone
	}
	loc, err := time.LoadLocation(opts.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", opts.TimeZone, err)
	}
	return &Notifier{
		feed:     feed,
		seen:     seen,
		loc:      loc,
		interval: opts.Interval,
		maxItems: opts.MaxItems,
		onNotify: opts.OnNotify,
		log:      logger.Named("notifier"),
		now:      time.Now,
	}, nil
}

// Poll fetches the feed once. On the initial poll with an empty seen set all
// current events are marked seen and nothing is surfaced.
func (n *Notifier) Poll(ctx context.Context, initial bool) ([]Notification, error) {
	items, err := n.feed.FetchFeed(ctx)
	if err != nil {
		return nil, err
	}
	seen, err := n.seen.Load(ctx)
	if err != nil {
		return nil, err
	}

	if initial && len(seen) == 0 {
		ids := make([]string, 0, len(items))
		for _, it := range items {
			ids = append(ids, strconv.FormatUint(uint64(it.EventID), 10))
		}
		if err := n.seen.Add(ctx, ids...); err != nil {
			return nil, err
		}
		n.log.Debug("Primed seen set", zap.Int("count", len(ids)))
		return nil, nil
	}

	received := n.now()
	var fresh []Notification
	var ids []string
	for _, it := range items {
		id := strconv.FormatUint(uint64(it.EventID), 10)
		if _, ok := seen[id]; ok {
			continue
		}
		// 同一批次中重复的ID只提示一次
		seen[id] = struct{}{}
		ids = append(ids, id)
		fresh = append(fresh, n.toNotification(id, it, received))
	}
	if len(fresh) == 0 {
		return nil, nil
	}

	n.mu.Lock()
	n.items = append(append([]Notification{}, fresh...), n.items...)
	if len(n.items) > n.maxItems {
		n.items = n.items[:n.maxItems]
	}
	n.unread += len(fresh)
	n.mu.Unlock()

	if err := n.seen.Add(ctx, ids...); err != nil {
		return fresh, err
	}
	return fresh, nil
}

func (n *Notifier) toNotification(id string, it FeedItem, received time.Time) Notification {
	club := it.ClubName
	if club == "" {
		club = unknownClub
	}
	nt := Notification{
		ID:         id,
		Title:      it.Title,
		ClubName:   club,
		When:       "-",
		ReceivedAt: received,
	}
	if start, err := utils.ParseUTC(it.StartAt); err == nil {
		nt.StartAt = start
		nt.When = start.In(n.loc).Format(timeLayout)
	}
	return nt
}

// Run polls immediately and then every interval until ctx is done. Poll
// failures are logged and skipped.
func (n *Notifier) Run(ctx context.Context) {
	n.pollAndNotify(ctx, true)

	ticker := time.NewTicker(n.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n.pollAndNotify(ctx, false)
		}
	}
}

func (n *Notifier) pollAndNotify(ctx context.Context, initial bool) {
	fresh, err := n.Poll(ctx, initial)
	if err != nil {
		n.log.Debug("Poll failed", zap.Error(err))
	}
	if len(fresh) > 0 && n.onNotify != nil {
		n.onNotify(fresh)
	}
}

// Items returns the recent notifications, newest first.
func (n *Notifier) Items() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.items...)
}

func (n *Notifier) Unread() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.unread
}

// MarkRead resets the unread counter, as opening the bell does.
func (n *Notifier) MarkRead() {
	n.mu.Lock()
	n.unread = 0
	n.mu.Unlock()
}
