package usecase

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront-checkout/internal/domain"
	"storefront-checkout/pkg/cache"
	"storefront-checkout/pkg/logger"
)

// CheckoutConfig carries the flat business constants of the checkout flow.
type CheckoutConfig struct {
	Pricing        PricingRules
	DeliveryDays   int // delivery date offset from submission
	Currency       string
	LookupQuiet    time.Duration // quiet period before an outbound pincode lookup
	SubmitDelay    time.Duration // pacing delay between challenge pass and submission
	LookupCacheTTL time.Duration
}

// CheckoutUsecase drives one checkout session from cart snapshot to accepted
// order: address staging and selection, pincode resolution, phone
// verification, the human challenge gate, and COD/online payment branching.
type CheckoutUsecase struct {
	sessions    domain.SessionStore
	addressRepo domain.AddressRepository
	orderRepo   domain.OrderRepository
	lookup      domain.PincodeLookupService
	verifier    domain.PhoneVerificationService
	gateway     domain.PaymentGatewayService
	incidents   domain.PaymentIncidentStore // nil disables durable incident records
	txManager   domain.TransactionManager   // nil runs submissions without a wrapping tx
	lookupCache cache.CacheService
	cfg         CheckoutConfig

	guards sync.Map // session id -> *sessionGuard
}

func NewCheckoutUsecase(
	sessions domain.SessionStore,
	addressRepo domain.AddressRepository,
	orderRepo domain.OrderRepository,
	lookup domain.PincodeLookupService,
	verifier domain.PhoneVerificationService,
	gateway domain.PaymentGatewayService,
	incidents domain.PaymentIncidentStore,
	txManager domain.TransactionManager,
	lookupCache cache.CacheService,
	cfg CheckoutConfig,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		sessions:    sessions,
		addressRepo: addressRepo,
		orderRepo:   orderRepo,
		lookup:      lookup,
		verifier:    verifier,
		gateway:     gateway,
		incidents:   incidents,
		txManager:   txManager,
		lookupCache: lookupCache,
		cfg:         cfg,
	}
}

// sessionGuard serializes mutations of one session and tracks which logical
// actions have a request in flight, so the same action cannot double-submit.
type sessionGuard struct {
	mu       sync.Mutex
	inFlight map[string]bool
}

func (u *CheckoutUsecase) guard(sessionID string) *sessionGuard {
	g, _ := u.guards.LoadOrStore(sessionID, &sessionGuard{inFlight: make(map[string]bool)})
	return g.(*sessionGuard)
}

func (g *sessionGuard) begin(action string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.inFlight[action] {
		return domain.ErrActionInFlight
	}
	g.inFlight[action] = true
	return nil
}

func (g *sessionGuard) end(action string) {
	g.mu.Lock()
	delete(g.inFlight, action)
	g.mu.Unlock()
}

// StartGuardSweeper periodically drops guard entries whose session has
// expired from the store, so abandoned checkouts do not pin their guards
// forever. It runs until ctx is cancelled.
func (u *CheckoutUsecase) StartGuardSweeper(ctx context.Context, period time.Duration) {
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				u.sweepGuards()
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (u *CheckoutUsecase) sweepGuards() {
	u.guards.Range(func(key, value any) bool {
		id := key.(string)
		if _, ok := u.sessions.Get(id); ok {
			return true
		}
		g := value.(*sessionGuard)
		g.mu.Lock()
		busy := len(g.inFlight) > 0
		g.mu.Unlock()
		if !busy {
			u.guards.Delete(id)
		}
		return true
	})
}

func (u *CheckoutUsecase) load(sessionID, userID string) (*domain.CheckoutSession, *sessionGuard, error) {
	s, ok := u.sessions.Get(sessionID)
	if !ok || s.UserID != userID {
		return nil, nil, domain.ErrSessionNotFound
	}
	return s, u.guard(sessionID), nil
}

// --- Session lifecycle ---

// Start opens a checkout session from a cart snapshot. An empty cart never
// reaches checkout. Saved addresses are loaded once here; the first one, if
// any, becomes the effective selection.
func (u *CheckoutUsecase) Start(ctx context.Context, user *domain.User, items []domain.LineItem) (*domain.CheckoutSession, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	addrs, err := u.addressRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("unable to load saved addresses: %w", err)
	}

	s := &domain.CheckoutSession{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		UserEmail:   user.Email,
		Items:       append([]domain.LineItem(nil), items...),
		Addresses:   addrs,
		Draft:       domain.Address{Country: "India"},
		PaymentMode: domain.PaymentModeCOD,
		CreatedAt:   time.Now(),
	}
	if len(addrs) > 0 {
		s.SelectedAddressID = addrs[0].ID
	}

	g := u.guard(s.ID)
	g.mu.Lock()
	defer g.mu.Unlock()
	u.sessions.Put(s)
	return s.Clone(), nil
}

// Get returns a detached snapshot of the session. The stored session is only
// ever read or written under its guard mutex; callers get a copy they can
// encode freely.
func (u *CheckoutUsecase) Get(sessionID, userID string) (*domain.CheckoutSession, error) {
	s, g, err := u.load(sessionID, userID)
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return s.Clone(), nil
}

// Totals computes the current order totals for a session.
func (u *CheckoutUsecase) Totals(sessionID, userID string) (Totals, error) {
	s, g, err := u.load(sessionID, userID)
	if err != nil {
		return Totals{}, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return CalculateTotals(s.Items, u.cfg.Pricing), nil
}

// --- Address staging ---

// DraftUpdate carries partial edits to the staged address. Nil fields are
// untouched.
type DraftUpdate struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Street  *string `json:"street"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Pincode *string `json:"pincode"`
	Country *string `json:"country"`
}

// UpdateDraft applies field edits to the staged draft. Editing the phone
// re-arms verification; editing the pincode invalidates the lookup result and
// the locality fields derived from it.
func (u *CheckoutUsecase) UpdateDraft(sessionID, userID string, upd DraftUpdate) (*domain.CheckoutSession, error) {
	s, g, err := u.load(sessionID, userID)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	// The pincode branch runs first so that city and state sent along with
	// the new pincode in the same update survive the invalidation.
	if upd.Pincode != nil && *upd.Pincode != s.Draft.Pincode {
		s.Draft.Pincode = *upd.Pincode
		s.LookupGen++
		s.Lookup = nil
		s.Draft.City = ""
		s.Draft.State = ""
	}
	if upd.Name != nil {
		s.Draft.Name = *upd.Name
	}
	if upd.Street != nil {
		s.Draft.Street = *upd.Street
	}
	if upd.City != nil {
		s.Draft.City = *upd.City
	}
	if upd.State != nil {
		s.Draft.State = *upd.State
	}
	if upd.Country != nil {
		s.Draft.Country = *upd.Country
	}
	if upd.Phone != nil && *upd.Phone != s.Draft.Phone {
		s.Draft.Phone = *upd.Phone
		s.PhoneVerified = false
	}

	u.sessions.Put(s)
	return s.Clone(), nil
}

// StageNew clears the effective address and enters staging mode with a blank
// draft. Phone verification is reset with it.
func (u *CheckoutUsecase) StageNew(sessionID, userID string) (*domain.CheckoutSession, error) {
	s, g, err := u.load(sessionID, userID)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	s.StagingNew = true
	s.SelectedAddressID = ""
	s.Draft = domain.Address{Country: "India"}
	s.PhoneVerified = false
	s.Lookup = nil
	s.LookupGen++

	u.sessions.Put(s)
	return s.Clone(), nil
}

// SelectAddress makes a previously saved address the effective one and exits
// staging mode. Re-selecting the current selection is a no-op and does not
// touch verification state.
func (u *CheckoutUsecase) SelectAddress(sessionID, userID, addressID string) (*domain.CheckoutSession, error) {
	s, g, err := u.load(sessionID, userID)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if s.SelectedAddressID == addressID {
		return s.Clone(), nil
	}

	found := false
	for i := range s.Addresses {
		if s.Addresses[i].ID == addressID {
			found = true
			break
		}
	}
	if !found {
		return nil, domain.ErrAddressNotFound
	}

	s.SelectedAddressID = addressID
	s.StagingNew = false

	u.sessions.Put(s)
	return s.Clone(), nil
}

// SaveAddress persists the staged draft. It is rejected unless every field is
// filled, the phone passed verification in this session, and the pincode
// resolved successfully with the chosen state and city among the candidates.
// On success the saved address becomes the effective selection and the list
// is replaced from the repository.
func (u *CheckoutUsecase) SaveAddress(ctx context.Context, sessionID, userID string) (*domain.CheckoutSession, error) {
	s, g, err := u.load(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := g.begin("save-address"); err != nil {
		return nil, err
	}
	defer g.end("save-address")

	g.mu.Lock()
	if !s.StagingNew {
		g.mu.Unlock()
		return nil, &domain.ValidationError{Field: "address", Message: "no new address staged"}
	}
	draft := s.Draft
	verified := s.PhoneVerified
	lookup := s.Lookup
	g.mu.Unlock()

	draft.UserID = userID
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	if !verified {
		return nil, domain.ErrPhoneNotVerified
	}
	if lookup == nil {
		return nil, &domain.ValidationError{Field: "pincode", Message: "pincode has not been resolved"}
	}
	if draft.State != lookup.State {
		return nil, &domain.ValidationError{Field: "state", Message: "state does not match the pincode"}
	}
	if !containsString(lookup.Blocks, draft.City) && !containsString(lookup.Street, draft.City) {
		return nil, &domain.ValidationError{Field: "city", Message: "city is not served by the pincode"}
	}

	if err := u.addressRepo.Add(ctx, &draft); err != nil {
		return nil, fmt.Errorf("failed to save address: %w", err)
	}

	// Replace the list from the repository so the session reflects
	// server-assigned ids rather than a locally patched copy.
	addrs, err := u.addressRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload addresses: %w", err)
	}

	g.mu.Lock()
	s.Addresses = addrs
	s.SelectedAddressID = draft.ID
	s.StagingNew = false
	u.sessions.Put(s)
	snap := s.Clone()
	g.mu.Unlock()

	return snap, nil
}

// DeleteAddress removes a saved address. Deleting the effective selection
// clears it.
func (u *CheckoutUsecase) DeleteAddress(ctx context.Context, sessionID, userID, addressID string) (*domain.CheckoutSession, error) {
	s, g, err := u.load(sessionID, userID)
	if err != nil {
		return nil, err
	}

	if err := u.addressRepo.Delete(ctx, addressID, userID); err != nil {
		return nil, err
	}
	addrs, err := u.addressRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload addresses: %w", err)
	}

	g.mu.Lock()
	s.Addresses = addrs
	if s.SelectedAddressID == addressID {
		s.SelectedAddressID = ""
	}
	u.sessions.Put(s)
	snap := s.Clone()
	g.mu.Unlock()

	return snap, nil
}

// --- Pincode lookup ---

// LookupPincode resolves the draft's pincode. The call waits out a quiet
// period first and carries the generation current at entry; if the pincode is
// edited while the lookup is pending, the stale result is discarded (last
// write wins). Partial pincodes short-circuit and clear dependent fields
// without touching the network.
func (u *CheckoutUsecase) LookupPincode(ctx context.Context, sessionID, userID string) (*domain.LookupResult, error) {
	s, g, err := u.load(sessionID, userID)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	pin := s.Draft.Pincode
	gen := s.LookupGen
	g.mu.Unlock()

	if !domain.ValidPincode(pin) {
		u.clearLookup(s, g, gen)
		return nil, domain.ErrInvalidPincode
	}

	if u.cfg.LookupQuiet > 0 {
		timer := time.NewTimer(u.cfg.LookupQuiet)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		g.mu.Lock()
		stale := s.LookupGen != gen
		g.mu.Unlock()
		if stale {
			return nil, domain.ErrLookupSuperseded
		}
	}

	result, err := u.resolvePincode(ctx, pin)
	if err != nil {
		// Not-found and transport failures both clear the dependent fields;
		// the user sees them the same way.
		u.clearLookup(s, g, gen)
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if s.LookupGen != gen {
		return nil, domain.ErrLookupSuperseded
	}
	s.Lookup = result
	s.Draft.State = result.State
	u.sessions.Put(s)
	return result, nil
}

func (u *CheckoutUsecase) resolvePincode(ctx context.Context, pin string) (*domain.LookupResult, error) {
	cacheKey := "pincode:" + pin
	if u.lookupCache != nil {
		if v, ok := u.lookupCache.Get(cacheKey); ok {
			if cached, ok := v.(*domain.LookupResult); ok {
				return cached, nil
			}
		}
	}

	result, err := u.lookup.Lookup(ctx, pin)
	if err != nil {
		return nil, err
	}
	if u.lookupCache != nil {
		u.lookupCache.Set(cacheKey, result, u.cfg.LookupCacheTTL)
	}
	return result, nil
}

func (u *CheckoutUsecase) clearLookup(s *domain.CheckoutSession, g *sessionGuard, gen uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if s.LookupGen != gen {
		return
	}
	s.Lookup = nil
	s.Draft.City = ""
	s.Draft.State = ""
	u.sessions.Put(s)
}

// --- Phone verification ---

// VerifyPhone confirms the draft's phone number. The format gate fires before
// any network call; verification only sticks if the phone was not edited
// while the external call was in flight.
func (u *CheckoutUsecase) VerifyPhone(ctx context.Context, sessionID, userID string) error {
	s, g, err := u.load(sessionID, userID)
	if err != nil {
		return err
	}
	if err := g.begin("verify-phone"); err != nil {
		return err
	}
	defer g.end("verify-phone")

	g.mu.Lock()
	phoneNum := s.Draft.Phone
	s.PhoneVerified = false
	g.mu.Unlock()

	if err := u.verifier.Verify(ctx, phoneNum); err != nil {
		u.sessions.Put(s)
		return err
	}

	g.mu.Lock()
	if s.Draft.Phone == phoneNum {
		s.PhoneVerified = true
	}
	u.sessions.Put(s)
	g.mu.Unlock()
	return nil
}

// --- Payment mode ---

func (u *CheckoutUsecase) SetPaymentMode(sessionID, userID string, mode domain.PaymentMode) (*domain.CheckoutSession, error) {
	if mode != domain.PaymentModeCOD && mode != domain.PaymentModeOnline {
		return nil, &domain.ValidationError{Field: "paymentMode", Message: "must be COD or Online"}
	}

	s, g, err := u.load(sessionID, userID)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	s.PaymentMode = mode
	u.sessions.Put(s)
	snap := s.Clone()
	g.mu.Unlock()
	return snap, nil
}

// --- Human challenge ---

// OpenChallenge generates a fresh challenge code in front of order
// submission. Reopening or refreshing always discards the previous code.
func (u *CheckoutUsecase) OpenChallenge(sessionID, userID string) (*domain.ChallengeState, error) {
	s, g, err := u.load(sessionID, userID)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := s.EffectiveAddress(); !ok {
		return nil, domain.ErrNoAddressSelected
	}

	s.Challenge = &domain.ChallengeState{
		Code:     newChallengeCode(),
		OpenedAt: time.Now(),
	}
	u.sessions.Put(s)
	ch := *s.Challenge
	return &ch, nil
}

// CancelChallenge closes the challenge without submitting anything. Checkout
// state is left exactly as it was.
func (u *CheckoutUsecase) CancelChallenge(sessionID, userID string) error {
	s, g, err := u.load(sessionID, userID)
	if err != nil {
		return err
	}

	g.mu.Lock()
	s.Challenge = nil
	u.sessions.Put(s)
	g.mu.Unlock()
	return nil
}

// ChallengeOutcome is the result of a challenge attempt. On a mismatch a
// regenerated challenge is returned for the retry. On a match, exactly one of
// Order (COD, already submitted) or Payment (online, sheet to open) is set.
type ChallengeOutcome struct {
	Matched   bool                   `json:"matched"`
	Challenge *domain.ChallengeState `json:"challenge,omitempty"`
	Order     *domain.Order          `json:"order,omitempty"`
	Payment   *domain.GatewayOrder   `json:"payment,omitempty"`
}

// VerifyChallenge checks the user's input against the open challenge code.
// A match releases the pending submission exactly once, after a short pacing
// delay: COD orders are submitted immediately, online payment hands off to
// the gateway and submission waits for ConfirmPayment.
func (u *CheckoutUsecase) VerifyChallenge(ctx context.Context, sessionID, userID, input string) (*ChallengeOutcome, error) {
	s, g, err := u.load(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := g.begin("place-order"); err != nil {
		return nil, err
	}
	defer g.end("place-order")

	g.mu.Lock()
	ch := s.Challenge
	if ch == nil {
		g.mu.Unlock()
		return nil, domain.ErrChallengeNotOpen
	}
	if !challengeMatches(ch.Code, input) {
		// Regenerate: the old code is gone, the user retries against a new one.
		s.Challenge = &domain.ChallengeState{
			Code:     newChallengeCode(),
			OpenedAt: time.Now(),
		}
		u.sessions.Put(s)
		regenerated := *s.Challenge
		g.mu.Unlock()
		return &ChallengeOutcome{Matched: false, Challenge: &regenerated}, domain.ErrChallengeMismatch
	}

	// Consumed on success; a second submission needs a fresh challenge.
	s.Challenge = nil
	addr, ok := s.EffectiveAddress()
	if !ok {
		g.mu.Unlock()
		return nil, domain.ErrNoAddressSelected
	}
	shippingAddr := *addr
	mode := s.PaymentMode
	u.sessions.Put(s)
	g.mu.Unlock()

	if u.cfg.SubmitDelay > 0 {
		timer := time.NewTimer(u.cfg.SubmitDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	totals := CalculateTotals(s.Items, u.cfg.Pricing)

	if mode == domain.PaymentModeOnline {
		amountMinor := int64(math.Round(totals.Total * 100))
		gatewayOrder, err := u.gateway.CreateOrder(ctx, amountMinor, u.cfg.Currency, s.ID, domain.PaymentPrefill{
			Name:    shippingAddr.Name,
			Email:   s.UserEmail,
			Contact: shippingAddr.Phone,
		})
		if err != nil {
			return nil, err
		}

		g.mu.Lock()
		s.AwaitingPayment = true
		s.GatewayOrderID = gatewayOrder.ID
		u.sessions.Put(s)
		g.mu.Unlock()
		return &ChallengeOutcome{Matched: true, Payment: gatewayOrder}, nil
	}

	order := u.compose(s, shippingAddr, domain.PaymentModeCOD, false, "not paid", totals.Total)
	if err := u.submitOrder(ctx, order); err != nil {
		return nil, &domain.SubmissionError{Message: err.Error(), Err: err}
	}

	g.mu.Lock()
	s.OrderID = order.ID
	u.sessions.Put(s)
	g.mu.Unlock()
	return &ChallengeOutcome{Matched: true, Order: order}, nil
}

// --- Payment confirmation ---

// ConfirmPayment finalizes an online-payment order after the gateway's
// success callback. A submission failure here is the severe failure mode:
// funds are captured but the order is unrecorded, so the incident is logged
// at error level and archived durably before the distinct error is returned.
func (u *CheckoutUsecase) ConfirmPayment(ctx context.Context, sessionID, userID, paymentID, signature string) (*domain.Order, error) {
	s, g, err := u.load(sessionID, userID)
	if err != nil {
		return nil, err
	}
	if err := g.begin("confirm-payment"); err != nil {
		return nil, err
	}
	defer g.end("confirm-payment")

	g.mu.Lock()
	if !s.AwaitingPayment {
		g.mu.Unlock()
		return nil, domain.ErrNoPaymentPending
	}
	gatewayOrderID := s.GatewayOrderID
	addr, ok := s.EffectiveAddress()
	if !ok {
		g.mu.Unlock()
		return nil, domain.ErrNoAddressSelected
	}
	shippingAddr := *addr
	g.mu.Unlock()

	if err := u.gateway.VerifySignature(gatewayOrderID, paymentID, signature); err != nil {
		return nil, err
	}

	totals := CalculateTotals(s.Items, u.cfg.Pricing)
	order := u.compose(s, shippingAddr, domain.PaymentModeOnline, true, paymentID, totals.Total)

	if err := u.submitOrder(ctx, order); err != nil {
		u.recordIncident(ctx, s, gatewayOrderID, paymentID, order, err)
		return nil, &domain.SubmissionError{
			Message:         err.Error(),
			PaymentCaptured: true,
			Err:             err,
		}
	}

	g.mu.Lock()
	s.AwaitingPayment = false
	s.OrderID = order.ID
	u.sessions.Put(s)
	g.mu.Unlock()
	return order, nil
}

// --- Order history ---

func (u *CheckoutUsecase) GetMyOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	return u.orderRepo.GetByUserID(ctx, userID)
}

// --- internals ---

func (u *CheckoutUsecase) compose(s *domain.CheckoutSession, addr domain.Address, mode domain.PaymentMode, paid bool, paymentID string, total float64) *domain.Order {
	now := time.Now()
	products := make([]domain.OrderProduct, len(s.Items))
	for i, item := range s.Items {
		products[i] = domain.OrderProduct{
			Product:  item.ProductID,
			Quantity: item.ProductQuantity,
			Price:    item.ProductPrice,
			Name:     item.ProductName,
			Picture:  item.ProductImage,
		}
	}
	return &domain.Order{
		ID:              uuid.New().String(),
		UserID:          s.UserID,
		Products:        products,
		ShippingAddress: addr,
		PaymentMode:     mode,
		TotalPrice:      total,
		PaymentStatus:   paid,
		PaymentID:       paymentID,
		PaymentDate:     now,
		DeliveryDate:    now.AddDate(0, 0, u.cfg.DeliveryDays),
	}
}

func (u *CheckoutUsecase) submitOrder(ctx context.Context, order *domain.Order) error {
	if u.txManager != nil {
		return u.txManager.Do(ctx, func(txCtx context.Context) error {
			return u.orderRepo.Create(txCtx, order)
		})
	}
	return u.orderRepo.Create(ctx, order)
}

func (u *CheckoutUsecase) recordIncident(ctx context.Context, s *domain.CheckoutSession, gatewayOrderID, paymentID string, order *domain.Order, cause error) {
	incident := &domain.PaymentIncident{
		SessionID:      s.ID,
		UserID:         s.UserID,
		GatewayOrderID: gatewayOrderID,
		PaymentID:      paymentID,
		Amount:         order.TotalPrice,
		Reason:         cause.Error(),
		Order:          order,
		OccurredAt:     time.Now(),
	}

	event := logger.Error().
		Str("session_id", s.ID).
		Str("payment_id", paymentID).
		Str("gateway_order_id", gatewayOrderID).
		Float64("amount", order.TotalPrice).
		Err(cause)

	if u.incidents == nil {
		event.Msg("Payment captured but order not recorded; incident archive disabled")
		return
	}

	ref, archiveErr := u.incidents.Save(ctx, incident)
	if archiveErr != nil {
		event.AnErr("archive_error", archiveErr).Msg("Payment captured but order not recorded; incident archive failed")
		return
	}
	event.Str("incident_ref", ref).Msg("Payment captured but order not recorded")
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
