// Package requestsvc triển khai workflow request phê duyệt đa vai trò:
// tạo, liệt kê theo hướng, phản hồi một lần, sửa/xóa khi còn pending,
// thống kê và danh sách người nhận.
package requestsvc

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/base/models"
	basesvc "github.com/devxankit/CRM-SaaS-sub000/internal/api/base/service"
	identitymodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/identity/models"
	identitysvc "github.com/devxankit/CRM-SaaS-sub000/internal/api/identity/service"
	projectmodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/project/models"
	requestdto "github.com/devxankit/CRM-SaaS-sub000/internal/api/request/dto"
	requestmodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/request/models"
	"github.com/devxankit/CRM-SaaS-sub000/internal/common"
	"github.com/devxankit/CRM-SaaS-sub000/internal/global"
	"github.com/devxankit/CRM-SaaS-sub000/internal/logger"
	"github.com/devxankit/CRM-SaaS-sub000/internal/utility"
)

// RequestService là cấu trúc chứa các phương thức của workflow request.
type RequestService struct {
	*basesvc.BaseServiceMongoImpl[requestmodels.Request]
	roles    *identitysvc.RoleRegistry
	projects *basesvc.BaseServiceMongoImpl[projectmodels.Project]
	finance  *basesvc.BaseServiceMongoImpl[projectmodels.FinanceTransaction]
}

// NewRequestService tạo mới RequestService.
func NewRequestService() (*RequestService, error) {
	requestCol, exist := global.RegistryCollections.Get(global.ColNames.Requests)
	if !exist {
		return nil, fmt.Errorf("failed to get requests collection: %v", common.ErrNotFound)
	}
	projectCol, exist := global.RegistryCollections.Get(global.ColNames.Projects)
	if !exist {
		return nil, fmt.Errorf("failed to get projects collection: %v", common.ErrNotFound)
	}
	financeCol, exist := global.RegistryCollections.Get(global.ColNames.FinanceTransactions)
	if !exist {
		return nil, fmt.Errorf("failed to get finance_transactions collection: %v", common.ErrNotFound)
	}
	roles, err := identitysvc.NewRoleRegistry()
	if err != nil {
		return nil, err
	}

	return &RequestService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[requestmodels.Request](requestCol),
		roles:                roles,
		projects:             basesvc.NewBaseServiceMongo[projectmodels.Project](projectCol),
		finance:              basesvc.NewBaseServiceMongo[projectmodels.FinanceTransaction](financeCol),
	}, nil
}

// moduleForRole suy ra module mặc định từ role tag của actor.
func moduleForRole(role string) string {
	switch role {
	case identitymodels.RoleAdmin:
		return requestmodels.ModuleAdmin
	case identitymodels.RoleClient:
		return requestmodels.ModuleClient
	case identitymodels.RoleEmployee:
		return requestmodels.ModuleEmployee
	case identitymodels.RoleProjectManager:
		return requestmodels.ModulePM
	case identitymodels.RoleSales:
		return requestmodels.ModuleSales
	default:
		return ""
	}
}

// truncateDescription cắt description về độ dài tối đa của field.
func truncateDescription(s string) string {
	if len(s) > requestmodels.DescriptionMaxLength {
		return s[:requestmodels.DescriptionMaxLength]
	}
	return s
}

// Create tạo một request mới ở trạng thái pending.
// Thứ tự validate cố định: field bắt buộc, recipientModel, recipient tồn tại,
// project/client tồn tại (nếu có), ràng buộc amount theo type.
func (s *RequestService) Create(ctx context.Context, actorID primitive.ObjectID, actorRole string, input *requestdto.RequestCreateInput) (*requestdto.RequestDetail, error) {
	if input.Title == "" || input.Description == "" || input.Type == "" || input.Recipient == "" || input.RecipientModel == "" {
		return nil, common.NewValidationError("Title, description, type, recipient, and recipientModel are required")
	}
	if !utility.Contains(requestmodels.AllTypes, input.Type) {
		return nil, common.NewValidationError(fmt.Sprintf("Invalid request type '%s'", input.Type))
	}
	if !identitymodels.IsValidRole(input.RecipientModel) {
		return nil, common.NewValidationError(fmt.Sprintf("Invalid recipientModel '%s'", input.RecipientModel))
	}

	recipientID, err := primitive.ObjectIDFromHex(input.Recipient)
	if err != nil {
		return nil, common.NewValidationError("Invalid recipient id")
	}
	exists, err := s.roles.Exists(ctx, input.RecipientModel, recipientID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.NewNotFoundError("Recipient not found")
	}

	req := requestmodels.Request{
		Module:           moduleForRole(actorRole),
		Type:             input.Type,
		Title:            input.Title,
		Description:      truncateDescription(input.Description),
		Category:         input.Category,
		Priority:         input.Priority,
		RequestedBy:      actorID,
		RequestedByModel: actorRole,
		Recipient:        recipientID,
		RecipientModel:   input.RecipientModel,
		Metadata:         input.Metadata,
		Status:           requestmodels.StatusPending,
	}
	if input.Module != "" {
		req.Module = input.Module
	}
	if req.Priority == "" {
		req.Priority = requestmodels.PriorityNormal
	}

	if input.Project != "" {
		projectID, err := primitive.ObjectIDFromHex(input.Project)
		if err != nil {
			return nil, common.NewValidationError("Invalid project id")
		}
		exists, err := s.projects.DocumentExists(ctx, bson.M{"_id": projectID})
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, common.NewNotFoundError("Project not found")
		}
		req.Project = projectID
	}

	if input.Client != "" {
		clientID, err := primitive.ObjectIDFromHex(input.Client)
		if err != nil {
			return nil, common.NewValidationError("Invalid client id")
		}
		exists, err := s.roles.Exists(ctx, identitymodels.RoleClient, clientID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, common.NewNotFoundError("Client not found")
		}
		req.Client = clientID
	}

	if input.Type == requestmodels.TypePaymentRecovery && input.Amount <= 0 {
		return nil, common.NewValidationError("A positive amount is required for payment-recovery requests")
	}
	req.Amount = input.Amount

	created, err := s.InsertOne(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.populateOne(ctx, created)
}

// directionFilter dựng filter theo hướng nhìn của actor.
// incoming: actor là recipient; outgoing: actor là requestedBy; all: một trong hai.
func directionFilter(direction string, actorID primitive.ObjectID, actorRole string) bson.M {
	incoming := bson.M{"recipient": actorID, "recipientModel": actorRole}
	outgoing := bson.M{"requestedBy": actorID, "requestedByModel": actorRole}
	switch direction {
	case "incoming":
		return incoming
	case "outgoing":
		return outgoing
	default:
		return bson.M{"$or": []bson.M{incoming, outgoing}}
	}
}

// buildListFilter dựng filter danh sách từ query, trên nền directionFilter.
func buildListFilter(q *requestdto.RequestListQuery, actorID primitive.ObjectID, actorRole string) bson.M {
	filter := directionFilter(q.Direction, actorID, actorRole)
	if q.Module != "" {
		filter["module"] = q.Module
	}
	if q.Type != "" {
		filter["type"] = q.Type
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if q.Priority != "" {
		filter["priority"] = q.Priority
	}
	if q.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		search := []bson.M{
			{"title": pattern},
			{"description": pattern},
		}
		if existing, ok := filter["$or"]; ok {
			// Đã có $or theo hướng, gộp hai điều kiện bằng $and
			delete(filter, "$or")
			filter["$and"] = []bson.M{
				{"$or": existing},
				{"$or": search},
			}
		} else {
			filter["$or"] = search
		}
	}
	return filter
}

// List trả về danh sách request theo hướng + filter, sort theo updatedAt giảm dần,
// phân trang, mỗi dòng đã populate các tham chiếu polymorphic.
func (s *RequestService) List(ctx context.Context, actorID primitive.ObjectID, actorRole string, q *requestdto.RequestListQuery) (*basemodels.PaginateResult[requestdto.RequestDetail], error) {
	filter := buildListFilter(q, actorID, actorRole)
	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})

	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}

	result, err := s.FindWithPagination(ctx, filter, page, limit, opts)
	if err != nil {
		return nil, err
	}

	details, err := s.populateMany(ctx, result.Items)
	if err != nil {
		return nil, err
	}
	return &basemodels.PaginateResult[requestdto.RequestDetail]{
		Items:     details,
		Page:      result.Page,
		Limit:     result.Limit,
		ItemCount: result.ItemCount,
		Total:     result.Total,
		TotalPage: result.TotalPage,
	}, nil
}

// GetByID trả về một request; chỉ requestedBy hoặc recipient (khớp cả id lẫn
// role model) mới được xem.
func (s *RequestService) GetByID(ctx context.Context, actorID primitive.ObjectID, actorRole string, id primitive.ObjectID) (*requestdto.RequestDetail, error) {
	req, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	if !req.IsRequestedBy(actorID, actorRole) && !req.IsRecipient(actorID, actorRole) {
		return nil, common.NewForbiddenError("You do not have permission to view this request")
	}
	return s.populateOne(ctx, req)
}

// Respond ghi phản hồi cho một request. Chuyển trạng thái là một
// FindOneAndUpdate có điều kiện status=pending: hai responder đồng thời thì
// người đến sau không match document nào và nhận Conflict, không có cửa sổ
// check-then-act.
func (s *RequestService) Respond(ctx context.Context, actorID primitive.ObjectID, actorRole string, id primitive.ObjectID, input *requestdto.RequestRespondInput) (*requestdto.RequestDetail, error) {
	newStatus := requestmodels.StatusForResponseType(input.ResponseType)
	if newStatus == "" {
		return nil, common.NewValidationError(fmt.Sprintf("Invalid response type '%s'", input.ResponseType))
	}
	if input.ResponseType != requestmodels.ResponseApprove && input.Message == "" {
		return nil, common.NewValidationError("A response message is required unless approving")
	}

	req, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	if !req.IsRecipient(actorID, actorRole) {
		return nil, common.NewForbiddenError("Only the recipient can respond to this request")
	}

	response := requestmodels.Response{
		Type:             input.ResponseType,
		Message:          input.Message,
		RespondedBy:      actorID,
		RespondedByModel: actorRole,
		RespondedAt:      time.Now().UnixMilli(),
	}
	updated, err := s.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": requestmodels.StatusPending},
		&basesvc.UpdateData{Set: map[string]interface{}{
			"status":   newStatus,
			"response": response,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err != nil {
		if err == common.ErrNotFound {
			return nil, common.NewConflictError("This request has already been responded to")
		}
		return nil, err
	}

	// Side effect nghiệp vụ: duyệt installment của sales
	if updated.Type == requestmodels.TypeApproval &&
		updated.Module == requestmodels.ModuleSales &&
		input.ResponseType == requestmodels.ResponseApprove {
		if err := s.approveInstallment(ctx, &updated); err != nil {
			return nil, err
		}
	}

	return s.populateOne(ctx, updated)
}

// installmentApprovalFilter match dự án chứa đúng installment còn pending.
// Hai điều kiện phải nằm trong $elemMatch để cùng trỏ vào một phần tử của
// installmentPlan; viết rời bằng dot notation thì một phần tử đã paid và một
// phần tử pending khác có thể thỏa mãn chéo nhau và match nhầm. Toán tử vị trí
// $ trong update trỏ vào phần tử mà $elemMatch đã match.
func installmentApprovalFilter(projectID, installmentID primitive.ObjectID) bson.M {
	return bson.M{
		"_id": projectID,
		"installmentPlan": bson.M{"$elemMatch": bson.M{
			"_id":    installmentID,
			"status": projectmodels.InstallmentStatusPending,
		}},
	}
}

// classifyInstallmentMiss phân loại khi update có điều kiện không match:
// installment có mặt trong plan nghĩa là đã thanh toán rồi, vắng mặt là NotFound.
func classifyInstallmentMiss(plan []projectmodels.Installment, installmentID primitive.ObjectID) error {
	for _, inst := range plan {
		if inst.ID == installmentID {
			return common.NewConflictError("This installment has already been marked as paid")
		}
	}
	return common.NewNotFoundError("Installment not found")
}

// approveInstallment đánh dấu installment trong metadata của request là đã thanh toán.
// Đánh dấu paid là phần bắt buộc (NotFound/Conflict lan ra caller); ghi giao dịch
// tài chính và recompute tổng là best-effort, lỗi chỉ log.
func (s *RequestService) approveInstallment(ctx context.Context, req *requestmodels.Request) error {
	rawID, ok := req.Metadata["installmentId"].(string)
	if !ok || rawID == "" {
		// Không có installment đính kèm, không có side effect
		return nil
	}
	installmentID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return common.NewValidationError("Invalid installmentId in request metadata")
	}
	if req.Project.IsZero() {
		return common.NewValidationError("Request has no project to reconcile the installment against")
	}

	paidDate := time.Now().UnixMilli()
	if v, ok := req.Metadata["paidDate"].(float64); ok && v > 0 {
		paidDate = int64(v)
	}
	set := map[string]interface{}{
		"installmentPlan.$.status":   projectmodels.InstallmentStatusPaid,
		"installmentPlan.$.paidDate": paidDate,
	}
	if notes, ok := req.Metadata["notes"].(string); ok && notes != "" {
		set["installmentPlan.$.notes"] = notes
	}

	// Update có điều kiện: chỉ match khi installment còn pending
	project, err := s.projects.FindOneAndUpdate(ctx,
		installmentApprovalFilter(req.Project, installmentID),
		&basesvc.UpdateData{Set: set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err != nil {
		if err != common.ErrNotFound {
			return err
		}
		// Không match: phân biệt installment không tồn tại với đã thanh toán
		existing, findErr := s.projects.FindOneById(ctx, req.Project)
		if findErr != nil {
			return findErr
		}
		return classifyInstallmentMiss(existing.InstallmentPlan, installmentID)
	}

	// Best-effort: ghi giao dịch tài chính (có chống trùng theo installmentId)
	if err := s.recordInstallmentTransaction(ctx, &project, installmentID); err != nil {
		logger.GetErrorLogger().WithError(err).WithFields(map[string]interface{}{
			"project":     req.Project.Hex(),
			"installment": installmentID.Hex(),
		}).Error("Failed to record installment finance transaction")
	}

	// Best-effort: recompute các tổng tài chính từ toàn bộ installment plan
	if err := s.recomputeProjectTotals(ctx, &project); err != nil {
		logger.GetErrorLogger().WithError(err).WithField("project", req.Project.Hex()).
			Error("Failed to recompute project financial totals")
	}

	return nil
}

// recordInstallmentTransaction ghi một giao dịch incoming cho installment vừa
// được duyệt. Upsert theo installmentId nên duyệt lại cùng installment không
// tạo bản ghi trùng.
func (s *RequestService) recordInstallmentTransaction(ctx context.Context, project *projectmodels.Project, installmentID primitive.ObjectID) error {
	var amount float64
	for _, inst := range project.InstallmentPlan {
		if inst.ID == installmentID {
			amount = inst.Amount
			break
		}
	}

	_, err := s.finance.Upsert(ctx, bson.M{"installmentId": installmentID}, map[string]interface{}{
		"type":          "incoming",
		"amount":        amount,
		"project":       project.ID,
		"installmentId": installmentID,
		"description":   fmt.Sprintf("Installment payment for project %s", project.Name),
	})
	return err
}

// recomputeProjectTotals tính lại totalAmount/totalPaid/totalPending từ
// installment plan. Idempotent: chạy lại bao nhiêu lần cũng cho cùng kết quả.
func (s *RequestService) recomputeProjectTotals(ctx context.Context, project *projectmodels.Project) error {
	var total, paid float64
	for _, inst := range project.InstallmentPlan {
		total += inst.Amount
		if inst.Status == projectmodels.InstallmentStatusPaid {
			paid += inst.Amount
		}
	}
	_, err := s.projects.UpdateById(ctx, project.ID, &basesvc.UpdateData{Set: map[string]interface{}{
		"totalAmount":  total,
		"totalPaid":    paid,
		"totalPending": total - paid,
	}})
	return err
}

// Update sửa một request còn pending. Chỉ người tạo được sửa; chỉ các field
// title/description/priority/category (và amount với payment-recovery) đổi được.
func (s *RequestService) Update(ctx context.Context, actorID primitive.ObjectID, actorRole string, id primitive.ObjectID, input *requestdto.RequestUpdateInput) (*requestdto.RequestDetail, error) {
	req, err := s.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}
	if !req.IsRequestedBy(actorID, actorRole) {
		return nil, common.NewForbiddenError("Only the request creator can update this request")
	}

	set := map[string]interface{}{}
	if input.Title != nil {
		if *input.Title == "" {
			return nil, common.NewValidationError("Title cannot be empty")
		}
		set["title"] = *input.Title
	}
	if input.Description != nil {
		if *input.Description == "" {
			return nil, common.NewValidationError("Description cannot be empty")
		}
		set["description"] = truncateDescription(*input.Description)
	}
	if input.Priority != nil {
		if !utility.Contains(requestmodels.AllPriorities, *input.Priority) {
			return nil, common.NewValidationError(fmt.Sprintf("Invalid priority '%s'", *input.Priority))
		}
		set["priority"] = *input.Priority
	}
	if input.Category != nil {
		set["category"] = *input.Category
	}
	if input.Amount != nil {
		if req.Type != requestmodels.TypePaymentRecovery {
			return nil, common.NewValidationError("Amount can only be updated for payment-recovery requests")
		}
		if *input.Amount <= 0 {
			return nil, common.NewValidationError("A positive amount is required for payment-recovery requests")
		}
		set["amount"] = *input.Amount
	}
	if len(set) == 0 {
		return nil, common.NewValidationError("No updatable fields provided")
	}

	// Update có điều kiện status=pending để không ghi đè request đã chốt
	updated, err := s.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": requestmodels.StatusPending},
		&basesvc.UpdateData{Set: set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if err != nil {
		if err == common.ErrNotFound {
			return nil, common.NewConflictError("Only pending requests can be updated")
		}
		return nil, err
	}
	return s.populateOne(ctx, updated)
}

// Delete xóa một request còn pending. Chỉ người tạo được xóa.
func (s *RequestService) Delete(ctx context.Context, actorID primitive.ObjectID, actorRole string, id primitive.ObjectID) error {
	req, err := s.FindOneById(ctx, id)
	if err != nil {
		return err
	}
	if !req.IsRequestedBy(actorID, actorRole) {
		return common.NewForbiddenError("Only the request creator can delete this request")
	}

	// Xóa có điều kiện status=pending, trả về document đã xóa để phát event
	_, err = s.FindOneAndDelete(ctx, bson.M{"_id": id, "status": requestmodels.StatusPending}, nil)
	if err == common.ErrNotFound {
		return common.NewConflictError("Only pending requests can be deleted")
	}
	return err
}

// Statistics tính các bộ đếm độc lập trên cùng predicate hướng.
// Các count chạy song song; thống kê chỉ mang tính thông tin nên không yêu cầu
// nhất quán chéo giữa các count.
func (s *RequestService) Statistics(ctx context.Context, actorID primitive.ObjectID, actorRole string, direction string) (*requestdto.RequestStatistics, error) {
	base := func() bson.M { return directionFilter(direction, actorID, actorRole) }

	stats := &requestdto.RequestStatistics{ByModule: make(map[string]int64, len(requestmodels.AllModules))}
	var mu sync.Mutex
	var wg sync.WaitGroup
	var firstErr error

	count := func(extend func(bson.M), assign func(int64)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			filter := base()
			if extend != nil {
				extend(filter)
			}
			n, err := s.CountDocuments(ctx, filter)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			assign(n)
		}()
	}

	count(nil, func(n int64) { stats.Total = n })
	count(func(f bson.M) { f["status"] = requestmodels.StatusPending }, func(n int64) { stats.Pending = n })
	count(func(f bson.M) { f["status"] = requestmodels.StatusResponded }, func(n int64) { stats.Responded = n })
	count(func(f bson.M) { f["status"] = requestmodels.StatusApproved }, func(n int64) { stats.Approved = n })
	count(func(f bson.M) { f["status"] = requestmodels.StatusRejected }, func(n int64) { stats.Rejected = n })
	count(func(f bson.M) {
		f["status"] = requestmodels.StatusPending
		f["priority"] = requestmodels.PriorityUrgent
	}, func(n int64) { stats.UrgentPending = n })

	for _, module := range requestmodels.AllModules {
		m := module
		count(func(f bson.M) { f["module"] = m }, func(n int64) { stats.ByModule[m] = n })
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return stats, nil
}

// Recipients liệt kê định danh của một role tag (id/name/email/phone), tối đa 100 dòng.
func (s *RequestService) Recipients(ctx context.Context, roleTag string) ([]identitymodels.Summary, error) {
	if !identitymodels.IsValidRole(roleTag) {
		return nil, common.NewValidationError(fmt.Sprintf("Invalid recipient type '%s'", roleTag))
	}
	return s.roles.ListByRole(ctx, roleTag, 100)
}

// populateOne populate một request đơn lẻ.
func (s *RequestService) populateOne(ctx context.Context, req requestmodels.Request) (*requestdto.RequestDetail, error) {
	details, err := s.populateMany(ctx, []requestmodels.Request{req})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// populateMany resolve các tham chiếu polymorphic cho cả trang kết quả.
// Ids được gom theo role model rồi fetch một lần mỗi nhóm, tránh N+1 query;
// respondedByModel thay đổi theo từng document nên cũng gom theo nhóm.
func (s *RequestService) populateMany(ctx context.Context, reqs []requestmodels.Request) ([]requestdto.RequestDetail, error) {
	details := make([]requestdto.RequestDetail, 0, len(reqs))
	if len(reqs) == 0 {
		return details, nil
	}

	// Gom id theo role model cho cả ba điểm resolve
	idsByRole := make(map[string]map[primitive.ObjectID]bool)
	add := func(role string, id primitive.ObjectID) {
		if role == "" || id.IsZero() {
			return
		}
		if idsByRole[role] == nil {
			idsByRole[role] = make(map[primitive.ObjectID]bool)
		}
		idsByRole[role][id] = true
	}
	projectIDs := make(map[primitive.ObjectID]bool)
	for i := range reqs {
		add(reqs[i].RequestedByModel, reqs[i].RequestedBy)
		add(reqs[i].RecipientModel, reqs[i].Recipient)
		if reqs[i].Response != nil {
			add(reqs[i].Response.RespondedByModel, reqs[i].Response.RespondedBy)
		}
		if !reqs[i].Project.IsZero() {
			projectIDs[reqs[i].Project] = true
		}
	}

	summaries := make(map[string]map[primitive.ObjectID]identitymodels.Summary, len(idsByRole))
	for role, idSet := range idsByRole {
		ids := make([]primitive.ObjectID, 0, len(idSet))
		for id := range idSet {
			ids = append(ids, id)
		}
		found, err := s.roles.Summaries(ctx, role, ids)
		if err != nil {
			return nil, err
		}
		summaries[role] = found
	}

	projectRefs := make(map[primitive.ObjectID]requestdto.ProjectRef, len(projectIDs))
	if len(projectIDs) > 0 {
		ids := make([]primitive.ObjectID, 0, len(projectIDs))
		for id := range projectIDs {
			ids = append(ids, id)
		}
		projects, err := s.projects.FindManyByIds(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, p := range projects {
			projectRefs[p.ID] = requestdto.ProjectRef{ID: p.ID.Hex(), Name: p.Name}
		}
	}

	lookup := func(role string, id primitive.ObjectID) *identitymodels.Summary {
		if found, ok := summaries[role][id]; ok {
			return &found
		}
		return nil
	}
	for i := range reqs {
		detail := requestdto.RequestDetail{Request: reqs[i]}
		detail.RequesterInfo = lookup(reqs[i].RequestedByModel, reqs[i].RequestedBy)
		detail.RecipientInfo = lookup(reqs[i].RecipientModel, reqs[i].Recipient)
		if reqs[i].Response != nil {
			detail.RespondedByInfo = lookup(reqs[i].Response.RespondedByModel, reqs[i].Response.RespondedBy)
		}
		if ref, ok := projectRefs[reqs[i].Project]; ok {
			detail.ProjectInfo = &ref
		}
		details = append(details, detail)
	}
	return details, nil
}
