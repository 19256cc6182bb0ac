package nova

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/etnz/nova/log"
	"github.com/etnz/nova/storage"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Keys under which the Book persists its state.
const (
	KeyTheme        = "nova_theme"
	KeyTransactions = "nova_transactions"
	KeyCategories   = "nova_categories"
	KeyBudgets      = "nova_budgets"
)

var (
	ErrNegativeBudget = errors.New("budget limit cannot be negative")
	ErrEmptyCategory  = errors.New("category name cannot be empty")
	ErrDuplicateID    = errors.New("duplicate transaction id")
	ErrInvalidTheme   = errors.New("theme must be light or dark")
)

// Theme is the display preference.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// ParseTheme parses "light" or "dark".
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case Light, Dark:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// KV is the durable key-value store behind a Book.
//
// Get returns storage.ErrNotFound when the key has never been written.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// State is everything the application persists.
type State struct {
	Theme        Theme
	Transactions []Transaction // most recently added first
	Categories   Categories
	Budgets      Budgets
}

// DefaultState is the state of a fresh installation.
func DefaultState() State {
	return State{
		Theme:        Light,
		Transactions: []Transaction{},
		Categories:   DefaultCategories(),
		Budgets:      Budgets{},
	}
}

func (s State) clone() State {
	budgets := make(Budgets, len(s.Budgets))
	for k, v := range s.Budgets {
		budgets[k] = v
	}
	return State{
		Theme:        s.Theme,
		Transactions: slices.Clone(s.Transactions),
		Categories:   s.Categories.clone(),
		Budgets:      budgets,
	}
}

// Book owns the application state and mirrors every change to a KV store.
//
// Each mutation replaces one whole value and writes its key before the
// in-memory state changes, so a failed write leaves the Book untouched.
// A Book is safe for concurrent use.
type Book struct {
	mu    sync.Mutex
	kv    KV
	state State

	log   *log.Logger
	now   func() time.Time
	newID func() string
}

// Option configures a Book.
type Option func(*Book)

// WithLogger sets the logger, by default nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(b *Book) { b.log = l.WithComponent(log.ComponentBook) }
}

// WithClock sets the clock used when a transaction is added without a date.
func WithClock(now func() time.Time) Option {
	return func(b *Book) { b.now = now }
}

// WithIDs sets the transaction id generator, random UUIDs by default.
func WithIDs(newID func() string) Option {
	return func(b *Book) { b.newID = newID }
}

// OpenBook loads the state from kv.
//
// Missing keys get their default value. A key holding a value that cannot be
// decoded is first copied under CorruptKey(key), then gets its default value;
// for transactions, the records that still decode are kept. Only storage errors
// are returned, including a failure to write that copy.
func OpenBook(ctx context.Context, kv KV, opts ...Option) (*Book, error) {
	b := &Book{
		kv:    kv,
		state: DefaultState(),
		log:   log.Discard(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.load(ctx, KeyTheme, decodeTheme(&b.state.Theme)); err != nil {
		return nil, err
	}
	if err := b.load(ctx, KeyTransactions, decodeTransactions(&b.state.Transactions)); err != nil {
		return nil, err
	}
	if err := b.load(ctx, KeyCategories, decodeJSON(&b.state.Categories)); err != nil {
		return nil, err
	}
	if err := b.load(ctx, KeyBudgets, decodeJSON(&b.state.Budgets)); err != nil {
		return nil, err
	}
	// null values decode to nil.
	if b.state.Transactions == nil {
		b.state.Transactions = []Transaction{}
	}
	if b.state.Budgets == nil {
		b.state.Budgets = Budgets{}
	}
	b.log.Debug("book opened", log.FieldCount, len(b.state.Transactions))
	return b, nil
}

// CorruptKey is the key under which OpenBook keeps a copy of an undecodable value of key.
func CorruptKey(key string) string { return key + ".corrupt" }

// load reads key and decodes it with decode. An undecodable value is copied
// under CorruptKey(key) before anything can overwrite it.
func (b *Book) load(ctx context.Context, key string, decode func([]byte) error) error {
	data, err := b.kv.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading %q: %w", key, err)
	}
	derr := decode(data)
	if derr == nil {
		return nil
	}
	backup := CorruptKey(key)
	if err := b.kv.Put(ctx, backup, data); err != nil {
		return fmt.Errorf("keeping corrupt value of %q: %w", key, err)
	}
	b.log.WarnContext(ctx, "corrupt value copied, using what could be decoded",
		log.FieldOperation, log.OpLoad, log.FieldKey, key, log.FieldBackup, backup, log.FieldError, derr)
	return nil
}

// decodeJSON decodes into a temporary value so that dst keeps its default on failure.
func decodeJSON[T any](dst *T) func([]byte) error {
	return func(data []byte) error {
		var v T
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*dst = v
		return nil
	}
}

// decodeTransactions decodes a list of transactions. When the list as a whole
// cannot be decoded, dst gets the records that decode and validate on their
// own, and the error is still returned.
func decodeTransactions(dst *[]Transaction) func([]byte) error {
	return func(data []byte) error {
		var txs []Transaction
		err := json.Unmarshal(data, &txs)
		if err == nil {
			*dst = txs
			return nil
		}
		var raws []json.RawMessage
		if json.Unmarshal(data, &raws) != nil {
			return err
		}
		kept := []Transaction{}
		for _, raw := range raws {
			var t Transaction
			if json.Unmarshal(raw, &t) == nil && t.Validate() == nil {
				kept = append(kept, t)
			}
		}
		*dst = kept
		return err
	}
}

// decodeTheme accepts a JSON string or the bare theme name.
func decodeTheme(dst *Theme) func([]byte) error {
	return func(data []byte) error {
		raw := string(data)
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			raw = s
		}
		t, err := ParseTheme(raw)
		if err != nil {
			return err
		}
		*dst = t
		return nil
	}
}

// save writes v under key. Callers hold b.mu.
func (b *Book) save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	if err := b.kv.Put(ctx, key, data); err != nil {
		b.log.Failure(ctx, "cannot save", err, log.FieldOperation, log.OpSave, log.FieldKey, key)
		return fmt.Errorf("saving %q: %w", key, err)
	}
	return nil
}

// Save writes every key, so that a new store holds the whole state.
func (b *Book) Save(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	values := []struct {
		key string
		v   any
	}{
		{KeyTheme, b.state.Theme},
		{KeyTransactions, b.state.Transactions},
		{KeyCategories, b.state.Categories},
		{KeyBudgets, b.state.Budgets},
	}
	for _, kv := range values {
		if err := b.save(ctx, kv.key, kv.v); err != nil {
			return err
		}
	}
	return nil
}

// Snapshot returns a copy of the current state.
func (b *Book) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.clone()
}

// Transactions returns a copy of the transactions, most recently added first.
func (b *Book) Transactions() []Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.state.Transactions)
}

// Categories returns the category registry.
func (b *Book) Categories() Categories {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Categories.clone()
}

// Theme returns the current theme.
func (b *Book) Theme() Theme {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Theme
}

// Add records d as a new transaction dated when, or now if when is zero.
//
// The new transaction gets a fresh id and is placed first.
func (b *Book) Add(ctx context.Context, d Draft, when time.Time) (Transaction, error) {
	if err := d.Validate(); err != nil {
		return Transaction{}, err
	}
	if when.IsZero() {
		when = b.now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	t := NewTransaction(b.newID(), when, d)
	txs := slices.Concat([]Transaction{t}, b.state.Transactions)
	if err := b.save(ctx, KeyTransactions, txs); err != nil {
		return Transaction{}, err
	}
	b.state.Transactions = txs
	b.log.InfoContext(ctx, "transaction added", log.FieldOperation, log.OpCreate, log.FieldID, t.ID,
		log.FieldKind, t.Kind, log.FieldAmount, t.Amount.String(), log.FieldCategory, t.Category)
	return t, nil
}

// Import appends already recorded transactions.
//
// All transactions are validated first and ids must be new; nothing is written
// if any of them is rejected.
func (b *Book) Import(ctx context.Context, txs []Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	seen := make(map[string]bool, len(b.state.Transactions)+len(txs))
	for _, t := range b.state.Transactions {
		seen[t.ID] = true
	}
	for _, t := range txs {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("transaction %q: %w", t.ID, err)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateID, t.ID)
		}
		seen[t.ID] = true
	}

	all := slices.Concat(b.state.Transactions, txs)
	if err := b.save(ctx, KeyTransactions, all); err != nil {
		return err
	}
	b.state.Transactions = all
	b.log.InfoContext(ctx, "transactions imported", log.FieldOperation, log.OpCreate, log.FieldCount, len(txs))
	return nil
}

// Delete removes the transaction with the given id.
// It reports false, and writes nothing, when there is no such transaction.
func (b *Book) Delete(ctx context.Context, id string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.IndexFunc(b.state.Transactions, func(t Transaction) bool { return t.ID == id })
	if i < 0 {
		return false, nil
	}
	txs := slices.Delete(slices.Clone(b.state.Transactions), i, i+1)
	if err := b.save(ctx, KeyTransactions, txs); err != nil {
		return false, err
	}
	b.state.Transactions = txs
	b.log.InfoContext(ctx, "transaction deleted", log.FieldOperation, log.OpDelete, log.FieldID, id)
	return true, nil
}

// AddCategory registers name for kind k. Adding an existing name is a no-op.
func (b *Book) AddCategory(ctx context.Context, k Kind, name string) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, k)
	}
	if strings.TrimSpace(name) == "" {
		return ErrEmptyCategory
	}
	return b.updateCategories(ctx, func(c Categories) Categories { return c.With(k, name) })
}

// RemoveCategory unregisters name for kind k. Budgets and transactions are kept.
func (b *Book) RemoveCategory(ctx context.Context, k Kind, name string) error {
	if !k.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, k)
	}
	return b.updateCategories(ctx, func(c Categories) Categories { return c.Without(k, name) })
}

func (b *Book) updateCategories(ctx context.Context, update func(Categories) Categories) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := update(b.state.Categories)
	if err := b.save(ctx, KeyCategories, c); err != nil {
		return err
	}
	b.state.Categories = c
	return nil
}

// SetBudget sets the monthly limit of category. A zero limit means no limit.
func (b *Book) SetBudget(ctx context.Context, category string, limit decimal.Decimal) error {
	category = strings.TrimSpace(category)
	if category == "" {
		return ErrEmptyCategory
	}
	if limit.IsNegative() {
		return fmt.Errorf("%w: %s", ErrNegativeBudget, limit)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	budgets := b.state.Budgets.With(category, limit)
	if err := b.save(ctx, KeyBudgets, budgets); err != nil {
		return err
	}
	b.state.Budgets = budgets
	b.log.InfoContext(ctx, "budget set", log.FieldOperation, log.OpUpdate, log.FieldCategory, category,
		log.FieldAmount, limit.String())
	return nil
}

// SetTheme stores the theme preference.
func (b *Book) SetTheme(ctx context.Context, t Theme) error {
	if t != Light && t != Dark {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, t)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.setTheme(ctx, t)
}

// ToggleTheme switches between light and dark and returns the new theme.
func (b *Book) ToggleTheme(ctx context.Context) (Theme, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := b.state.Theme.Toggle()
	if err := b.setTheme(ctx, t); err != nil {
		return b.state.Theme, err
	}
	return t, nil
}

func (b *Book) setTheme(ctx context.Context, t Theme) error {
	if err := b.save(ctx, KeyTheme, t); err != nil {
		return err
	}
	b.state.Theme = t
	return nil
}
