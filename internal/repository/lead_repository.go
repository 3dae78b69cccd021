package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
	"github.com/Freeeeeet/drivelead_bot/internal/repository/base"
)

type LeadRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewLeadRepository(pool *pgxpool.Pool, logger *zap.Logger) *LeadRepository {
	return &LeadRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// WithTx возвращает репозиторий, работающий в транзакции
func (r *LeadRepository) WithTx(tx pgx.Tx) *LeadRepository {
	return &LeadRepository{Repository: r.Repository.WithTx(tx), logger: r.logger}
}

const leadColumns = `
	l.id, l.type, l.status, l.language, l.main_intent, l.bot_user_id,
	l.city_id, l.category_id, l.training_format_id, l.training_time_id, l.gearbox,
	l.school_id, l.instructor_id, l.instructor_tariff_id, l.preferred_instructor_gender,
	l.tariff_name, l.price_kzt, l.name, l.phone, l.iin, l.whatsapp, l.payment_link,
	l.manager_comment, l.source, l.created_at, l.updated_at,
	COALESCE(c.name_ru, ''), COALESCE(cat.name_ru, ''), COALESCE(s.name_ru, ''), COALESCE(i.display_name, '')
`

const leadJoins = `
	FROM lead l
	LEFT JOIN dict_city c ON c.id = l.city_id
	LEFT JOIN dict_category cat ON cat.id = l.category_id
	LEFT JOIN school s ON s.id = l.school_id
	LEFT JOIN instructor i ON i.id = l.instructor_id
`

func scanLead(row pgx.Row) (model.Lead, error) {
	var l model.Lead
	var gearbox, gender *string
	err := row.Scan(
		&l.ID,
		&l.Type,
		&l.Status,
		&l.Language,
		&l.MainIntent,
		&l.BotUserID,
		&l.CityID,
		&l.CategoryID,
		&l.TrainingFormatID,
		&l.TrainingTimeID,
		&gearbox,
		&l.SchoolID,
		&l.InstructorID,
		&l.InstructorTariffID,
		&gender,
		&l.TariffName,
		&l.PriceKZT,
		&l.Name,
		&l.Phone,
		&l.IIN,
		&l.WhatsApp,
		&l.PaymentLink,
		&l.ManagerComment,
		&l.Source,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.CityName,
		&l.CategoryName,
		&l.SchoolName,
		&l.InstructorName,
	)
	if err != nil {
		return l, err
	}
	l.Gearbox = gearboxPtr(gearbox)
	if gender != nil && *gender != "" {
		g := model.Gender(*gender)
		l.PreferredGender = &g
	}
	return l, nil
}

// Create сохраняет новую заявку, ID должен быть заполнен
func (r *LeadRepository) Create(ctx context.Context, lead *model.Lead) error {
	query := `
		INSERT INTO lead (
			id, type, status, language, main_intent, bot_user_id,
			city_id, category_id, training_format_id, training_time_id, gearbox,
			school_id, instructor_id, instructor_tariff_id, preferred_instructor_gender,
			tariff_name, price_kzt, name, phone, iin, whatsapp, source
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING created_at, updated_at
	`

	err := r.QueryRow(
		ctx, query,
		lead.ID,
		string(lead.Type),
		string(lead.Status),
		string(lead.Language),
		string(lead.MainIntent),
		lead.BotUserID,
		lead.CityID,
		lead.CategoryID,
		lead.TrainingFormatID,
		lead.TrainingTimeID,
		gearboxString(lead.Gearbox),
		lead.SchoolID,
		lead.InstructorID,
		lead.InstructorTariffID,
		genderString(lead.PreferredGender),
		lead.TariffName,
		lead.PriceKZT,
		lead.Name,
		lead.Phone,
		lead.IIN,
		lead.WhatsApp,
		lead.Source,
	).Scan(&lead.CreatedAt, &lead.UpdatedAt)

	if err != nil {
		r.logger.Error("Failed to insert lead into DB",
			zap.String("lead_id", lead.ID.String()),
			zap.String("type", string(lead.Type)),
			zap.Error(err))
		return fmt.Errorf("create lead: %w", err)
	}
	return nil
}

// GetByID получает заявку по ID, nil если не найдена
func (r *LeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Lead, error) {
	query := `SELECT ` + leadColumns + leadJoins + ` WHERE l.id = $1`

	l, err := scanLead(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lead by id: %w", err)
	}
	return &l, nil
}

// List возвращает заявки по фильтру, новые первыми
func (r *LeadRepository) List(ctx context.Context, f model.LeadFilter) ([]model.Lead, error) {
	var where base.Where
	if f.Status != nil {
		where.Add("l.status = ?", string(*f.Status))
	}
	if f.Type != nil {
		where.Add("l.type = ?", string(*f.Type))
	}
	if f.CityID != nil {
		where.Add("l.city_id = ?", *f.CityID)
	}
	if f.SchoolID != nil {
		where.Add("l.school_id = ?", *f.SchoolID)
	}
	if f.Phone != "" {
		where.Add("l.phone = ?", f.Phone)
	}
	if f.CreatedFrom != nil {
		where.Add("l.created_at >= ?", *f.CreatedFrom)
	}
	if f.CreatedTo != nil {
		where.Add("l.created_at <= ?", *f.CreatedTo)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT ` + leadColumns + leadJoins + where.SQL() +
		` ORDER BY l.created_at DESC LIMIT ` + where.Arg(limit)

	rows, err := r.Query(ctx, query, where.Args()...)
	if err != nil {
		r.logger.Error("Failed to query leads", zap.Error(err))
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads := make([]model.Lead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// LockStatus блокирует заявку до конца транзакции и возвращает её статус, nil если не найдена
func (r *LeadRepository) LockStatus(ctx context.Context, id uuid.UUID) (*model.LeadStatus, error) {
	var status model.LeadStatus
	err := r.QueryRow(ctx, `SELECT status FROM lead WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock lead: %w", err)
	}
	return &status, nil
}

// UpdateStatus меняет статус и, если передан, комментарий менеджера
func (r *LeadRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.LeadStatus, comment string) error {
	query := `
		UPDATE lead
		SET status = $2,
		    manager_comment = CASE WHEN $3 = '' THEN manager_comment ELSE $3 END,
		    updated_at = NOW()
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query, id, string(status), comment)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update lead status: lead %s not found", id)
	}
	return nil
}

// AddHistory записывает смену статуса
func (r *LeadRepository) AddHistory(ctx context.Context, h *model.LeadStatusHistory) error {
	var old *string
	if h.OldStatus != nil {
		s := string(*h.OldStatus)
		old = &s
	}

	query := `
		INSERT INTO lead_status_history (lead_id, old_status, new_status, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id, changed_at
	`

	err := r.QueryRow(ctx, query, h.LeadID, old, string(h.NewStatus), h.Note).Scan(&h.ID, &h.ChangedAt)
	if err != nil {
		return fmt.Errorf("add lead status history: %w", err)
	}
	return nil
}

// ListHistory возвращает историю статусов заявки, последние изменения первыми
func (r *LeadRepository) ListHistory(ctx context.Context, leadID uuid.UUID) ([]model.LeadStatusHistory, error) {
	query := `
		SELECT id, lead_id, old_status, new_status, note, changed_at
		FROM lead_status_history
		WHERE lead_id = $1
		ORDER BY changed_at DESC, id DESC
	`

	rows, err := r.Query(ctx, query, leadID)
	if err != nil {
		return nil, fmt.Errorf("list lead status history: %w", err)
	}
	defer rows.Close()

	history := make([]model.LeadStatusHistory, 0)
	for rows.Next() {
		var h model.LeadStatusHistory
		var old *string
		if err := rows.Scan(&h.ID, &h.LeadID, &old, &h.NewStatus, &h.Note, &h.ChangedAt); err != nil {
			return nil, fmt.Errorf("scan lead status history: %w", err)
		}
		if old != nil {
			s := model.LeadStatus(*old)
			h.OldStatus = &s
		}
		history = append(history, h)
	}
	return history, rows.Err()
}

// Stats считает заявки по статусам и типам
func (r *LeadRepository) Stats(ctx context.Context) (*model.LeadStats, error) {
	rows, err := r.Query(ctx, `SELECT status, type, COUNT(*) FROM lead GROUP BY status, type`)
	if err != nil {
		return nil, fmt.Errorf("lead stats: %w", err)
	}
	defer rows.Close()

	stats := &model.LeadStats{
		ByStatus: make(map[model.LeadStatus]int),
		ByType:   make(map[model.LeadType]int),
	}
	for rows.Next() {
		var status model.LeadStatus
		var leadType model.LeadType
		var n int
		if err := rows.Scan(&status, &leadType, &n); err != nil {
			return nil, fmt.Errorf("scan lead stats: %w", err)
		}
		stats.Total += n
		stats.ByStatus[status] += n
		stats.ByType[leadType] += n
	}
	return stats, rows.Err()
}

func gearboxString(g *model.Gearbox) *string {
	if g == nil {
		return nil
	}
	s := string(*g)
	return &s
}

func genderString(g *model.Gender) *string {
	if g == nil {
		return nil
	}
	s := string(*g)
	return &s
}
