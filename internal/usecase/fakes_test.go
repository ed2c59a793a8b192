package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"campustrade/internal/domain/entity"
	"campustrade/internal/domain/repository"
	ws "campustrade/internal/infrastructure/websocket"
	"campustrade/pkg/errors"
)

// In-memory fakes for the repository interfaces. They keep just enough
// behavior for the usecases under test: keyed lookups, NOT_FOUND errors, and
// the chat repo's transactional sequence numbering.

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*entity.Product
	views    map[string]int
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	repo := &fakeProductRepo{
		products: make(map[string]*entity.Product),
		views:    make(map[string]int),
	}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (f *fakeProductRepo) Create(ctx context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if product.ID == "" {
		product.ID = fmt.Sprintf("product-%d", len(f.products)+1)
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	copied := *product
	return &copied, nil
}

func (f *fakeProductRepo) List(ctx context.Context, filter repository.ProductFilter, sortBy string, limit, offset int) ([]*entity.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Product
	for _, p := range f.products {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.CampusID != "" && p.CampusID != filter.CampusID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) Search(ctx context.Context, query string, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	return f.List(ctx, filter, "", limit, offset)
}

func (f *fakeProductRepo) ListBySellerID(ctx context.Context, sellerID string, status string, limit, offset int) ([]*entity.Product, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Product
	for _, p := range f.products {
		if p.SellerID != sellerID {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) Update(ctx context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[product.ID]; !ok {
		return errors.NotFound("Product", nil)
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[id]
	if !ok {
		return errors.NotFound("Product", nil)
	}
	product.Status = status
	return nil
}

func (f *fakeProductRepo) IncrementViews(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.views[id]++
	return nil
}

type fakeCartRepo struct {
	mu    sync.Mutex
	items map[string]map[string]*entity.CartItem // userID -> productID -> item
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{items: make(map[string]map[string]*entity.CartItem)}
}

func (f *fakeCartRepo) GetItem(ctx context.Context, userID, productID string) (*entity.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[userID][productID]
	if !ok {
		return nil, errors.NotFound("Cart item", nil)
	}
	copied := *item
	return &copied, nil
}

func (f *fakeCartRepo) ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.CartItem
	for _, item := range f.items[userID] {
		copied := *item
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (f *fakeCartRepo) Upsert(ctx context.Context, item *entity.CartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.items[item.UserID] == nil {
		f.items[item.UserID] = make(map[string]*entity.CartItem)
	}
	copied := *item
	f.items[item.UserID][item.ProductID] = &copied
	return nil
}

func (f *fakeCartRepo) Delete(ctx context.Context, userID, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items[userID], productID)
	return nil
}

func (f *fakeCartRepo) DeleteAll(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, userID)
	return nil
}

type fakeGuestCartRepo struct {
	mu    sync.Mutex
	carts map[string][]entity.GuestCartItem
}

func newFakeGuestCartRepo() *fakeGuestCartRepo {
	return &fakeGuestCartRepo{carts: make(map[string][]entity.GuestCartItem)}
}

func (f *fakeGuestCartRepo) Get(ctx context.Context, token string) ([]entity.GuestCartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.GuestCartItem{}, f.carts[token]...), nil
}

func (f *fakeGuestCartRepo) Save(ctx context.Context, token string, items []entity.GuestCartItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(items) == 0 {
		delete(f.carts, token)
		return nil
	}
	f.carts[token] = append([]entity.GuestCartItem{}, items...)
	return nil
}

func (f *fakeGuestCartRepo) Delete(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.carts, token)
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []*entity.Order
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if order.ID == "" {
		order.ID = fmt.Sprintf("order-%d", len(f.orders)+1)
	}
	order.CreatedAt = time.Now()
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, order := range f.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, errors.NotFound("Order", nil)
}

func (f *fakeOrderRepo) ListByBuyer(ctx context.Context, buyerID string, limit, offset int) ([]*entity.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Order
	for _, order := range f.orders {
		if order.BuyerID == buyerID {
			out = append(out, order)
		}
	}
	return out, int64(len(out)), nil
}

type fakePurchaseRequestRepo struct {
	mu       sync.Mutex
	requests []*entity.PurchaseRequest
}

func (f *fakePurchaseRequestRepo) Create(ctx context.Context, req *entity.PurchaseRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	req.ID = fmt.Sprintf("req-%d", len(f.requests)+1)
	req.CreatedAt = time.Now()
	f.requests = append(f.requests, req)
	return nil
}

func (f *fakePurchaseRequestRepo) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*entity.PurchaseRequest, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.PurchaseRequest
	for _, req := range f.requests {
		if req.SellerID == sellerID {
			out = append(out, req)
		}
	}
	return out, int64(len(out)), nil
}

type fakeChatRepo struct {
	mu            sync.Mutex
	conversations map[string]*entity.Conversation
	messages      map[string][]*entity.Message
	nextID        int
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.Message),
	}
}

func (f *fakeChatRepo) Create(ctx context.Context, conv *entity.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	conv.ID = fmt.Sprintf("conv-%d", f.nextID)
	conv.CreatedAt = time.Now()
	conv.UpdatedAt = conv.CreatedAt
	if conv.UnreadCount == nil {
		conv.UnreadCount = make(map[string]int)
	}
	f.conversations[conv.ID] = conv
	return nil
}

func (f *fakeChatRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv, ok := f.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	return conv, nil
}

func (f *fakeChatRepo) GetByTriple(ctx context.Context, buyerID, sellerID, productID string) (*entity.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, conv := range f.conversations {
		if conv.BuyerID == buyerID && conv.SellerID == sellerID && conv.ProductID == productID {
			return conv, nil
		}
	}
	return nil, errors.NotFound("Conversation", nil)
}

func (f *fakeChatRepo) ListByParticipant(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Conversation
	for _, conv := range f.conversations {
		if conv.HasParticipant(userID) {
			out = append(out, conv)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) Update(ctx context.Context, conv *entity.Conversation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conversations[conv.ID] = conv
	return nil
}

func (f *fakeChatRepo) AppendMessage(ctx context.Context, message *entity.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv, ok := f.conversations[message.ConversationID]
	if !ok {
		return errors.NotFound("Conversation", nil)
	}

	message.ID = fmt.Sprintf("msg-%d", len(f.messages[conv.ID])+1)
	message.CreatedAt = time.Now()
	message.Seq = conv.MessageCount + 1

	conv.MessageCount = message.Seq
	conv.LastMessage = message.Content
	conv.LastMessageAt = message.CreatedAt
	conv.UnreadCount[conv.OtherParticipant(message.SenderID)]++

	f.messages[conv.ID] = append(f.messages[conv.ID], message)
	return nil
}

func (f *fakeChatRepo) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*entity.Message, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := f.messages[conversationID]
	return msgs, int64(len(msgs)), nil
}

func (f *fakeChatRepo) MarkRead(ctx context.Context, conversationID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	conv, ok := f.conversations[conversationID]
	if !ok {
		return errors.NotFound("Conversation", nil)
	}
	conv.UnreadCount[userID] = 0
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = user
	return nil
}

type fakeCampusRepo struct {
	campuses map[string]*entity.Campus
}

func newFakeCampusRepo(campuses ...*entity.Campus) *fakeCampusRepo {
	repo := &fakeCampusRepo{campuses: make(map[string]*entity.Campus)}
	for _, c := range campuses {
		repo.campuses[c.ID] = c
	}
	return repo
}

func (f *fakeCampusRepo) ListActive(ctx context.Context) ([]*entity.Campus, error) {
	var out []*entity.Campus
	for _, c := range f.campuses {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCampusRepo) GetByID(ctx context.Context, id string) (*entity.Campus, error) {
	c, ok := f.campuses[id]
	if !ok {
		return nil, errors.NotFound("Campus", nil)
	}
	return c, nil
}

type fakeAuthClient struct {
	mu          sync.Mutex
	createCalls int
	deleteCalls int
	failCreate  bool
	nextUID     string
}

func (f *fakeAuthClient) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.failCreate {
		return "", fmt.Errorf("auth backend unavailable")
	}
	if f.nextUID == "" {
		return "uid-1", nil
	}
	return f.nextUID, nil
}

func (f *fakeAuthClient) VerifyToken(ctx context.Context, token string) (string, error) {
	return "uid-1", nil
}

func (f *fakeAuthClient) DeleteUser(ctx context.Context, uid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	return nil
}

func (f *fakeAuthClient) SignInWithEmailPassword(email, password string) (string, string, error) {
	return "id-token", "refresh-token", nil
}

type recordedEvent struct {
	target string // "room:<id>" or "user:<id>"
	event  ws.Event
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (f *fakeNotifier) BroadcastToRoom(conversationID string, event ws.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{target: "room:" + conversationID, event: event})
}

func (f *fakeNotifier) SendToUser(userID string, event ws.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{target: "user:" + userID, event: event})
}

func (f *fakeNotifier) byTarget(target string) []ws.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []ws.Event
	for _, rec := range f.events {
		if rec.target == target {
			out = append(out, rec.event)
		}
	}
	return out
}

type fakeLimiter struct {
	mu      sync.Mutex
	denied  map[string]bool // action -> deny
	counted map[string]int
}

func newFakeLimiter() *fakeLimiter {
	return &fakeLimiter{
		denied:  make(map[string]bool),
		counted: make(map[string]int),
	}
}

func (f *fakeLimiter) Allow(userID, action string) (bool, time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counted[action]++
	if f.denied[action] {
		return false, time.Second
	}
	return true, 0
}
