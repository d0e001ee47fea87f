package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"critterkeep/internal/adapter/notify"
	"critterkeep/internal/app/activity"
	"critterkeep/internal/app/adopt"
	"critterkeep/internal/app/auth"
	"critterkeep/internal/app/care"
	"critterkeep/internal/app/ports"
	"critterkeep/internal/app/roster"
	"critterkeep/internal/app/shop"
	"critterkeep/internal/app/trading"
	"critterkeep/internal/domain/pet"
	"critterkeep/internal/domain/trade"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/hertz-contrib/websocket"
)

const userIDHeader = "X-User-ID"
const userKeyHeader = "X-User-Key"

type Handler struct {
	RegisterUC auth.RegisterUseCase
	AuthUC     auth.VerifyUseCase
	CareUC     care.UseCase
	ActivityUC activity.UseCase
	AdoptUC    adopt.UseCase
	PurchaseUC shop.PurchaseUseCase
	ChestUC    shop.OpenChestUseCase
	TradingUC  trading.UseCase
	RosterUC   roster.UseCase
	Catalog    ports.CatalogRepository
	KPI        kpiSnapshotProvider
	NoticeHub  *notify.Hub
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	users := s.Group("/api/users")
	users.POST("/register", h.register)

	pets := s.Group("/api/pets")
	pets.GET("", h.listPets)
	pets.GET("/active", h.listActivePets)
	pets.POST("/adopt", h.adopt)
	pets.POST("/:id/care", h.careAction)
	pets.POST("/:id/activity", h.activityAction)
	pets.POST("/:id/equip", h.equip)
	pets.POST("/:id/unequip", h.unequip)
	pets.POST("/:id/activate", h.activate)
	pets.POST("/:id/deactivate", h.deactivate)
	pets.DELETE("/:id", h.release)

	shopGroup := s.Group("/api/shop")
	shopGroup.GET("/items", h.listShopItems)
	shopGroup.POST("/purchase", h.purchase)
	shopGroup.POST("/chest/open", h.openChest)

	trades := s.Group("/api/trades")
	trades.POST("", h.createTrade)
	trades.GET("", h.listIncomingTrades)
	trades.POST("/:id/accept", h.acceptTrade)
	trades.POST("/:id/reject", h.rejectTrade)
	trades.POST("/:id/cancel", h.cancelTrade)

	s.GET("/api/accessories", h.listAccessories)
	s.GET("/api/house", h.listHouseItems)
	s.POST("/api/house/:id/place", h.placeHouseItem)
	s.GET("/api/notices", h.listNotices)

	s.GET("/ws/notices", h.noticeStream)
	s.GET("/ops/kpi", h.kpi)
}

func (h Handler) register(c context.Context, ctx *app.RequestContext) {
	resp, err := h.RegisterUC.Execute(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) listPets(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	views, err := h.RosterUC.ListPets(c, userID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"pets": views})
}

func (h Handler) listActivePets(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	pets, err := h.RosterUC.ListActivePets(c, userID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if pets == nil {
		pets = []pet.Pet{}
	}
	ctx.JSON(consts.StatusOK, map[string]any{"pets": pets})
}

type adoptRequest struct {
	Name     string `json:"name"`
	Species  string `json:"species"`
	Breed    string `json:"breed,omitempty"`
	Nickname string `json:"nickname,omitempty"`
}

func (h Handler) adopt(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body adoptRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.AdoptUC.Execute(c, adopt.Request{
		OwnerID:  userID,
		Name:     body.Name,
		Species:  pet.Species(body.Species),
		Breed:    body.Breed,
		Nickname: body.Nickname,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

type careRequest struct {
	Action string `json:"action"`
}

func (h Handler) careAction(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body careRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.CareUC.Execute(c, care.Request{
		OwnerID: userID,
		PetID:   string(ctx.Param("id")),
		Action:  pet.CareAction(body.Action),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type activityRequest struct {
	Type string `json:"type"`
}

func (h Handler) activityAction(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body activityRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ActivityUC.Execute(c, activity.Request{
		OwnerID: userID,
		PetID:   string(ctx.Param("id")),
		Type:    pet.ActivityType(body.Type),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type equipRequest struct {
	ItemID string `json:"item_id"`
}

func (h Handler) equip(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body equipRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	p, err := h.RosterUC.Equip(c, userID, string(ctx.Param("id")), body.ItemID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"pet": p})
}

type unequipRequest struct {
	Slot string `json:"slot"`
}

func (h Handler) unequip(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body unequipRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	p, err := h.RosterUC.Unequip(c, userID, string(ctx.Param("id")), body.Slot)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"pet": p})
}

func (h Handler) activate(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if err := h.RosterUC.Activate(c, userID, string(ctx.Param("id"))); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true})
}

func (h Handler) deactivate(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if err := h.RosterUC.Deactivate(c, userID, string(ctx.Param("id"))); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true})
}

func (h Handler) release(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if err := h.RosterUC.Release(c, userID, string(ctx.Param("id"))); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true})
}

func (h Handler) listShopItems(c context.Context, ctx *app.RequestContext) {
	items, err := h.Catalog.ListItems(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"items": items})
}

type purchaseRequest struct {
	PetID     string `json:"pet_id"`
	ItemID    string `json:"item_id"`
	ItemPrice int    `json:"item_price"`
}

func (h Handler) purchase(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body purchaseRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.PurchaseUC.Execute(c, shop.PurchaseRequest{
		OwnerID:   userID,
		PetID:     body.PetID,
		ItemID:    body.ItemID,
		ItemPrice: body.ItemPrice,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) openChest(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.ChestUC.Execute(c, userID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type createTradeRequest struct {
	RecipientID string             `json:"recipient_id"`
	Message     string             `json:"message,omitempty"`
	Items       []tradeItemPayload `json:"items"`
}

type tradeItemPayload struct {
	Kind           string `json:"kind"`
	ItemID         string `json:"item_id"`
	ItemName       string `json:"item_name,omitempty"`
	ItemEmoji      string `json:"item_emoji,omitempty"`
	SenderOffering bool   `json:"sender_offering"`
}

func (h Handler) createTrade(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body createTradeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	items := make([]trading.OfferedItem, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, trading.OfferedItem{
			Kind:           trade.ItemKind(it.Kind),
			ItemID:         it.ItemID,
			ItemName:       it.ItemName,
			ItemEmoji:      it.ItemEmoji,
			SenderOffering: it.SenderOffering,
		})
	}
	view, err := h.TradingUC.Create(c, trading.CreateRequest{
		SenderID:    userID,
		RecipientID: body.RecipientID,
		Message:     body.Message,
		Items:       items,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, view)
}

func (h Handler) listIncomingTrades(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	views, err := h.TradingUC.ListIncoming(c, userID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"trades": views})
}

func (h Handler) acceptTrade(c context.Context, ctx *app.RequestContext) {
	h.settleTrade(c, ctx, h.TradingUC.Accept)
}

func (h Handler) rejectTrade(c context.Context, ctx *app.RequestContext) {
	h.settleTrade(c, ctx, h.TradingUC.Reject)
}

func (h Handler) cancelTrade(c context.Context, ctx *app.RequestContext) {
	h.settleTrade(c, ctx, h.TradingUC.Cancel)
}

func (h Handler) settleTrade(c context.Context, ctx *app.RequestContext, settle func(context.Context, string, string) error) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if err := settle(c, userID, string(ctx.Param("id"))); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true})
}

func (h Handler) listAccessories(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	stacks, err := h.RosterUC.ListAccessories(c, userID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"accessories": stacks})
}

func (h Handler) listHouseItems(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	items, err := h.RosterUC.ListHouseItems(c, userID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"items": items})
}

type placeRequest struct {
	Room string `json:"room"`
}

func (h Handler) placeHouseItem(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body placeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if err := h.RosterUC.PlaceHouseItem(c, userID, string(ctx.Param("id")), body.Room); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"ok": true})
}

func (h Handler) listNotices(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	notices, err := h.RosterUC.ListNotices(c, userID, limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if notices == nil {
		notices = []pet.Notice{}
	}
	ctx.JSON(consts.StatusOK, map[string]any{"notices": notices})
}

var noticeUpgrader = websocket.HertzUpgrader{
	CheckOrigin: func(ctx *app.RequestContext) bool { return true },
}

func (h Handler) noticeStream(c context.Context, ctx *app.RequestContext) {
	userID, err := h.requireAuthenticatedUser(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if h.NoticeHub == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "notice stream not configured")
		return
	}
	if err := noticeUpgrader.Upgrade(ctx, func(conn *websocket.Conn) {
		h.NoticeHub.Serve(userID, conn)
	}); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "upgrade_failed", "websocket upgrade failed")
	}
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

var ErrMissingUserIDHeader = errors.New("missing x-user-id header")
var ErrMissingUserKeyHeader = errors.New("missing x-user-key header")
var ErrMissingUserCredentials = errors.New("missing user credentials")

func (h Handler) requireAuthenticatedUser(c context.Context, ctx *app.RequestContext) (string, error) {
	userID := strings.TrimSpace(string(ctx.GetHeader(userIDHeader)))
	userKey := strings.TrimSpace(string(ctx.GetHeader(userKeyHeader)))
	if userID == "" && userKey == "" {
		return "", ErrMissingUserCredentials
	}
	if userID == "" {
		return "", ErrMissingUserIDHeader
	}
	if userKey == "" {
		return "", ErrMissingUserKeyHeader
	}
	if err := h.AuthUC.Execute(c, userID, userKey); err != nil {
		return "", err
	}
	return userID, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingUserCredentials):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_user_credentials", err.Error())
	case errors.Is(err, ErrMissingUserIDHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_user_id", err.Error())
	case errors.Is(err, ErrMissingUserKeyHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_user_key", err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrorBody(ctx, consts.StatusUnauthorized, "invalid_user_credentials", err.Error())
	case errors.Is(err, care.ErrNotOwner),
		errors.Is(err, activity.ErrNotOwner),
		errors.Is(err, shop.ErrNotOwner),
		errors.Is(err, roster.ErrNotOwner):
		writeErrorBody(ctx, consts.StatusForbidden, "not_owner", err.Error())
	case errors.Is(err, trading.ErrNotRecipient):
		writeErrorBody(ctx, consts.StatusForbidden, "not_recipient", err.Error())
	case errors.Is(err, trading.ErrNotSender):
		writeErrorBody(ctx, consts.StatusForbidden, "not_sender", err.Error())
	case errors.Is(err, care.ErrInvalidAction),
		errors.Is(err, activity.ErrUnknownActivity),
		errors.Is(err, adopt.ErrUnknownSpecies),
		errors.Is(err, adopt.ErrInvalidRequest),
		errors.Is(err, shop.ErrInvalidRequest),
		errors.Is(err, trading.ErrInvalidRequest),
		errors.Is(err, trading.ErrSelfTrade),
		errors.Is(err, trading.ErrUnknownItemKind),
		errors.Is(err, auth.ErrInvalidRequest),
		errors.Is(err, roster.ErrInvalidSlot),
		errors.Is(err, roster.ErrUnknownRoom):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, care.ErrPetSleeping):
		writeErrorBody(ctx, consts.StatusConflict, "pet_sleeping", err.Error())
	case errors.Is(err, care.ErrPetSick), errors.Is(err, activity.ErrPetSick):
		writeErrorBody(ctx, consts.StatusConflict, "pet_recovering", err.Error())
	case errors.Is(err, care.ErrAlreadyAsleep):
		writeErrorBody(ctx, consts.StatusConflict, "already_asleep", err.Error())
	case errors.Is(err, care.ErrToyWornOut):
		writeErrorBody(ctx, consts.StatusConflict, "toy_limit_reached", err.Error())
	case errors.Is(err, care.ErrNoToyEquipped):
		writeErrorBody(ctx, consts.StatusConflict, "no_toy_equipped", err.Error())
	case errors.Is(err, activity.ErrOnCooldown):
		writeErrorBody(ctx, consts.StatusConflict, "activity_cooldown_active", err.Error())
	case errors.Is(err, activity.ErrInsufficientCoins),
		errors.Is(err, adopt.ErrInsufficientCoins),
		errors.Is(err, shop.ErrInsufficientCoins):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_coins", err.Error())
	case errors.Is(err, adopt.ErrSpeciesLocked):
		writeErrorBody(ctx, consts.StatusConflict, "species_locked", err.Error())
	case errors.Is(err, adopt.ErrNicknameTaken):
		writeErrorBody(ctx, consts.StatusConflict, "nickname_taken", err.Error())
	case errors.Is(err, shop.ErrPriceMismatch):
		writeErrorBody(ctx, consts.StatusConflict, "price_mismatch", err.Error())
	case errors.Is(err, shop.ErrEmptyLootTable):
		writeErrorBody(ctx, consts.StatusConflict, "loot_table_empty", err.Error())
	case errors.Is(err, trading.ErrNotPending):
		writeErrorBody(ctx, consts.StatusConflict, "trade_not_pending", err.Error())
	case errors.Is(err, trading.ErrItemNotOwned):
		writeErrorBody(ctx, consts.StatusConflict, "item_not_owned", err.Error())
	case errors.Is(err, roster.ErrSlotOccupied):
		writeErrorBody(ctx, consts.StatusConflict, "slot_occupied", err.Error())
	case errors.Is(err, roster.ErrSlotMismatch):
		writeErrorBody(ctx, consts.StatusConflict, "slot_mismatch", err.Error())
	case errors.Is(err, roster.ErrSlotEmpty):
		writeErrorBody(ctx, consts.StatusConflict, "slot_empty", err.Error())
	case errors.Is(err, roster.ErrNothingToWear):
		writeErrorBody(ctx, consts.StatusConflict, "not_in_inventory", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
