package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/dto"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/model"
	"github.com/LukasdeSouza/login-corp-nexus-backend/internal/repository"
	pkgerrors "github.com/LukasdeSouza/login-corp-nexus-backend/pkg/errors"
)

// ── 通知模块业务错误 ──

var (
	ErrNotificationNotFound = errors.New("通知不存在")

	ErrTitleRequired   = pkgerrors.Invalid("title 不能为空")
	ErrMessageRequired = pkgerrors.Invalid("message 不能为空")
	ErrTypeInvalid     = pkgerrors.Invalid("type 取值非法")
	ErrPriorityInvalid = pkgerrors.Invalid("priority 取值非法")
)

// WebhookContext Webhook 摄入时的来源上下文，落入 metadata 作为溯源信息
type WebhookContext struct {
	Source    string // 来源标签，同时写入 created_by
	UserAgent string
	ClientIP  string
}

// NotificationService 通知业务接口
type NotificationService interface {
	// 查询用户可见通知（含已读状态、未读数、分页）
	ListForUser(ctx context.Context, userID string, req *dto.NotificationListRequest) (*dto.NotificationFeedResponse, error)
	// 查询用户未读数（与列表的过滤条件一致）
	UnreadCount(ctx context.Context, userID string, req *dto.NotificationListRequest) (int64, error)
	// 标记单条已读（幂等；通知不存在也视为成功）
	MarkRead(ctx context.Context, notificationID, userID string) error
	// 批量标记已读
	MarkReadBatch(ctx context.Context, req *dto.MarkMultipleReadRequest, userID string) (*dto.MarkMultipleReadResponse, error)
	// 管理端创建通知
	Create(ctx context.Context, req *dto.CreateNotificationRequest, createdBy string) (*dto.AdminNotificationResponse, error)
	// Webhook 摄入外部通知
	IngestWebhook(ctx context.Context, req *dto.WebhookNotificationRequest, wc *WebhookContext) (*dto.WebhookNotificationResponse, error)
	// 停用通知（软删除；幂等）
	Deactivate(ctx context.Context, id string) error
	// 管理端全量列表
	AdminList(ctx context.Context, req *dto.AdminNotificationListRequest) ([]dto.AdminNotificationResponse, int64, error)
	// 管理端统计
	Stats(ctx context.Context) (*dto.NotificationStatsResponse, error)
}

type notificationService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewNotificationService 创建 NotificationService 实例
func NewNotificationService(repo *repository.Repository, logger *zap.Logger) NotificationService {
	return &notificationService{repo: repo, logger: logger}
}

// ════════════════════════════════════════════════════════════
// 用户侧查询 — 受众解析 + 时间窗口 + 已读合并
// ════════════════════════════════════════════════════════════

// feedEntry 可见通知及其已读状态
type feedEntry struct {
	n      *model.Notification
	isRead bool
	readAt *time.Time
}

// resolveFeed 解析用户可见集合：激活集 → 可见性判定 → 类型/优先级过滤 → 已读合并。
// 整个集合共用同一个 now，保证一次查询内时间窗口判定一致。
func (s *notificationService) resolveFeed(ctx context.Context, userID string, req *dto.NotificationListRequest) ([]feedEntry, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	live, err := s.repo.Notification.ListLive(ctx)
	if err != nil {
		s.logger.Error("查询激活通知失败", zap.Error(err))
		return nil, err
	}

	readSet, err := s.repo.NotificationRead.ReadSetByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询已读回执失败", zap.Error(err))
		return nil, err
	}

	typeSet := toSet(req.GetTypes())
	prioritySet := toSet(req.GetPriorities())

	now := time.Now()
	entries := make([]feedEntry, 0, len(live))
	for i := range live {
		n := &live[i]
		if !n.VisibleTo(user, now) {
			continue
		}
		if len(typeSet) > 0 && !typeSet[n.Type] {
			continue
		}
		if len(prioritySet) > 0 && !prioritySet[n.Priority] {
			continue
		}
		entry := feedEntry{n: n}
		if at, ok := readSet[n.NotificationID]; ok {
			entry.isRead = true
			t := at
			entry.readAt = &t
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *notificationService) ListForUser(ctx context.Context, userID string, req *dto.NotificationListRequest) (*dto.NotificationFeedResponse, error) {
	entries, err := s.resolveFeed(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	// 未读数按可见全集计算，与 include_read、分页无关
	var unread int64
	for _, e := range entries {
		if !e.isRead {
			unread++
		}
	}

	if !req.GetIncludeRead() {
		filtered := entries[:0]
		for _, e := range entries {
			if !e.isRead {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}

	// 排序：未读在前 → 优先级权重降序 → 创建时间降序
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.isRead != b.isRead {
			return !a.isRead
		}
		ra, rb := model.PriorityRank(a.n.Priority), model.PriorityRank(b.n.Priority)
		if ra != rb {
			return ra > rb
		}
		return a.n.CreatedAt.After(b.n.CreatedAt)
	})

	total := int64(len(entries))
	page, pageSize := req.GetPage(), req.GetPageSize()
	offset := req.GetOffset()

	var window []feedEntry
	if offset < len(entries) {
		end := offset + pageSize
		if end > len(entries) {
			end = len(entries)
		}
		window = entries[offset:end]
	}

	list := make([]dto.NotificationResponse, 0, len(window))
	for _, e := range window {
		list = append(list, toNotificationResponse(e))
	}

	return &dto.NotificationFeedResponse{
		List:        list,
		Pagination:  dto.NewPaginationMeta(total, page, pageSize),
		UnreadCount: unread,
	}, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string, req *dto.NotificationListRequest) (int64, error) {
	entries, err := s.resolveFeed(ctx, userID, req)
	if err != nil {
		return 0, err
	}
	var unread int64
	for _, e := range entries {
		if !e.isRead {
			unread++
		}
	}
	return unread, nil
}

// ════════════════════════════════════════════════════════════
// 已读回执 — 只追加、冲突忽略
// ════════════════════════════════════════════════════════════

// MarkRead 不校验通知是否存在：回执表无外键，
// 对已删除/未投递通知的标记静默成功，保证客户端重试安全。
func (s *notificationService) MarkRead(ctx context.Context, notificationID, userID string) error {
	if err := s.repo.NotificationRead.MarkRead(ctx, notificationID, userID); err != nil {
		s.logger.Error("标记已读失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *notificationService) MarkReadBatch(ctx context.Context, req *dto.MarkMultipleReadRequest, userID string) (*dto.MarkMultipleReadResponse, error) {
	// 去重后落库，响应按请求条数返回
	seen := make(map[string]bool, len(req.NotificationIDs))
	ids := make([]string, 0, len(req.NotificationIDs))
	for _, id := range req.NotificationIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	if err := s.repo.NotificationRead.MarkReadBatch(ctx, ids, userID); err != nil {
		s.logger.Error("批量标记已读失败", zap.Error(err))
		return nil, err
	}

	return &dto.MarkMultipleReadResponse{Marked: len(req.NotificationIDs)}, nil
}

// ════════════════════════════════════════════════════════════
// 摄入 — 管理端创建 / Webhook
// ════════════════════════════════════════════════════════════

// normalize 统一摄入归一化：补默认值、校验枚举、构造受众。
// 管理端与 Webhook 两条路径共用，保证同一套词汇表和错误口径。
func (s *notificationService) normalize(title, message, typ, priority, audienceTag string,
	companyID, userID *string, roles []string) (*model.Notification, error) {

	if title == "" {
		return nil, ErrTitleRequired
	}
	if message == "" {
		return nil, ErrMessageRequired
	}
	if typ == "" {
		typ = model.TypeInfo
	}
	if priority == "" {
		priority = model.PriorityNormal
	}
	if audienceTag == "" {
		audienceTag = model.AudienceTagAll
	}

	if !model.IsValidNotificationType(typ) {
		return nil, ErrTypeInvalid
	}
	if !model.IsValidPriority(priority) {
		return nil, ErrPriorityInvalid
	}

	aud, err := model.NewAudience(audienceTag, companyID, userID, roles)
	if err != nil {
		return nil, err
	}

	n := &model.Notification{
		Title:    title,
		Message:  message,
		Type:     typ,
		Priority: priority,
		IsActive: true,
	}
	n.SetAudience(aud)
	return n, nil
}

func (s *notificationService) Create(ctx context.Context, req *dto.CreateNotificationRequest, createdBy string) (*dto.AdminNotificationResponse, error) {
	n, err := s.normalize(req.Title, req.Message, req.Type, req.Priority,
		req.TargetAudience, req.TargetCompanyID, req.TargetUserID, req.TargetRoles)
	if err != nil {
		return nil, err
	}

	n.ScheduleFor = req.ScheduleFor
	n.ExpiresAt = req.ExpiresAt
	n.Metadata = model.JSONMap(req.Metadata)
	if createdBy != "" {
		n.CreatedBy = createdBy
	}

	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Error("创建通知失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("通知已创建",
		zap.String("notification_id", n.NotificationID),
		zap.String("target_audience", n.TargetAudience),
		zap.String("created_by", n.CreatedBy))

	resp := toAdminNotificationResponse(n)
	return &resp, nil
}

// IngestWebhook 将外部生产方的松散载荷归一化入库。
// 来源上下文（来源标签、User-Agent、客户端 IP、接收时间）合并进 metadata，
// 生产方自带的同名键会被溯源字段覆盖。
// Webhook 词汇表不含受众载荷，all 之外的 target 会因缺少载荷判为校验失败。
func (s *notificationService) IngestWebhook(ctx context.Context, req *dto.WebhookNotificationRequest, wc *WebhookContext) (*dto.WebhookNotificationResponse, error) {
	n, err := s.normalize(req.Title, req.Message, req.Type, req.Priority,
		req.Target, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	metadata := make(model.JSONMap, len(req.Metadata)+4)
	for k, v := range req.Metadata {
		metadata[k] = v
	}
	metadata["source"] = wc.Source
	metadata["webhook_source"] = wc.UserAgent
	metadata["webhook_ip"] = wc.ClientIP
	metadata["webhook_received_at"] = time.Now().Format(time.RFC3339)

	n.ScheduleFor = req.ScheduleFor
	n.ExpiresAt = req.ExpiresAt
	n.Metadata = metadata
	n.CreatedBy = wc.Source

	if err := s.repo.Notification.Create(ctx, n); err != nil {
		s.logger.Error("Webhook 通知入库失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Webhook 通知已摄入",
		zap.String("notification_id", n.NotificationID),
		zap.String("source", wc.Source),
		zap.String("webhook_ip", wc.ClientIP))

	// 对外部生产方只回最小字段集
	return &dto.WebhookNotificationResponse{
		ID:        n.NotificationID,
		Title:     n.Title,
		Type:      n.Type,
		CreatedAt: n.CreatedAt,
	}, nil
}

// ════════════════════════════════════════════════════════════
// 管理端 — 停用 / 列表 / 统计
// ════════════════════════════════════════════════════════════

func (s *notificationService) Deactivate(ctx context.Context, id string) error {
	if err := s.repo.Notification.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		s.logger.Error("停用通知失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *notificationService) AdminList(ctx context.Context, req *dto.AdminNotificationListRequest) ([]dto.AdminNotificationResponse, int64, error) {
	filters := &repository.NotificationListFilters{
		Search: req.Search,
	}
	// "all" 与空串均表示不过滤
	if req.Type != "" && req.Type != "all" {
		filters.Type = req.Type
	}
	if req.Priority != "" && req.Priority != "all" {
		filters.Priority = req.Priority
	}
	if req.Active == "true" || req.Active == "false" {
		active := req.Active == "true"
		filters.Active = &active
	}

	list, total, err := s.repo.Notification.ListAll(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询通知列表失败", zap.Error(err))
		return nil, 0, err
	}

	resp := make([]dto.AdminNotificationResponse, 0, len(list))
	for i := range list {
		resp = append(resp, toAdminNotificationResponse(&list[i]))
	}
	return resp, total, nil
}

func (s *notificationService) Stats(ctx context.Context) (*dto.NotificationStatsResponse, error) {
	now := time.Now()
	overview, err := s.repo.Notification.Overview(ctx, now)
	if err != nil {
		s.logger.Error("查询统计概览失败", zap.Error(err))
		return nil, err
	}

	typeRows, err := s.repo.Notification.TypeStats(ctx)
	if err != nil {
		s.logger.Error("查询类型统计失败", zap.Error(err))
		return nil, err
	}

	byType := make([]dto.NotificationTypeStat, 0, len(typeRows))
	for _, row := range typeRows {
		byType = append(byType, dto.NotificationTypeStat{
			Type:           row.Type,
			Sent:           row.Sent,
			Read:           row.ReadCount,
			ReadPercentage: row.ReadPercentage,
		})
	}

	return &dto.NotificationStatsResponse{
		Overview: dto.NotificationStatsOverview{
			Total:     overview.Total,
			Active:    overview.Active,
			Urgent:    overview.Urgent,
			Expired:   overview.Expired,
			Scheduled: overview.Scheduled,
		},
		ByType: byType,
	}, nil
}

// ── 转换辅助 ──

func toSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}

func toNotificationResponse(e feedEntry) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:             e.n.NotificationID,
		Title:          e.n.Title,
		Message:        e.n.Message,
		Type:           e.n.Type,
		Priority:       e.n.Priority,
		TargetAudience: e.n.TargetAudience,
		Metadata:       map[string]interface{}(e.n.Metadata),
		CreatedBy:      e.n.CreatedBy,
		CreatedAt:      e.n.CreatedAt,
		ScheduleFor:    e.n.ScheduleFor,
		ExpiresAt:      e.n.ExpiresAt,
		IsRead:         e.isRead,
		ReadAt:         e.readAt,
	}
}

func toAdminNotificationResponse(n *model.Notification) dto.AdminNotificationResponse {
	return dto.AdminNotificationResponse{
		ID:              n.NotificationID,
		Title:           n.Title,
		Message:         n.Message,
		Type:            n.Type,
		Priority:        n.Priority,
		TargetAudience:  n.TargetAudience,
		TargetCompanyID: n.TargetCompanyID,
		TargetUserID:    n.TargetUserID,
		TargetRoles:     []string(n.TargetRoles),
		IsActive:        n.IsActive,
		ScheduleFor:     n.ScheduleFor,
		ExpiresAt:       n.ExpiresAt,
		Metadata:        map[string]interface{}(n.Metadata),
		CreatedBy:       n.CreatedBy,
		CreatedAt:       n.CreatedAt,
		UpdatedAt:       n.UpdatedAt,
	}
}
