package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/mfgkit/mrplan/pkg/domain/entities"
	"github.com/mfgkit/mrplan/pkg/domain/repositories"
)

// RunRepository persists planning runs in PostgreSQL. SaveRun and
// DeleteRun each run inside one transaction, which is the engine's only
// transactional boundary: the header and the full node set commit
// together or not at all. See schema.sql for the table layout.
type RunRepository struct {
	db *sqlx.DB
}

// Open connects to PostgreSQL with the given DSN.
func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

// NewRunRepository creates a PostgreSQL run repository.
func NewRunRepository(db *sqlx.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Verify interface compliance
var _ repositories.RunRepository = (*RunRepository)(nil)

type runRow struct {
	ID                 uuid.UUID `db:"id"`
	Name               string    `db:"name"`
	Description        string    `db:"description"`
	MPSID              int64     `db:"mps_id"`
	LeadTimeFactor     float64   `db:"lead_time_factor"`
	IncludeSafetyStock bool      `db:"include_safety_stock"`
	RunDate            time.Time `db:"run_date"`
}

type nodeRow struct {
	RunID            uuid.UUID  `db:"run_id"`
	ID               int64      `db:"id"`
	ItemID           int64      `db:"item_id"`
	BOMID            *int64     `db:"bom_id"`
	MPSLineID        *int64     `db:"mps_line_id"`
	ParentID         *int64     `db:"parent_id"`
	RequiredDate     time.Time  `db:"required_date"`
	OrderReleaseDate time.Time  `db:"order_release_date"`

	GrossRequirement    entities.Quantity `db:"gross_requirement"`
	ProjectedOnHand     entities.Quantity `db:"projected_on_hand"`
	NetRequirement      entities.Quantity `db:"net_requirement"`
	PlannedOrderRelease entities.Quantity `db:"planned_order_release"`
	PlannedOrderReceipt entities.Quantity `db:"planned_order_receipt"`

	IsCritical bool `db:"is_critical"`
}

const insertRunQuery = `
	INSERT INTO mrp_runs (id, name, description, mps_id, lead_time_factor, include_safety_stock, run_date)
	VALUES ($1, $2, $3, $4, $5, $6, $7)`

const insertNodeQuery = `
	INSERT INTO mrp_nodes (
		run_id, id, item_id, bom_id, mps_line_id, parent_id,
		required_date, order_release_date,
		gross_requirement, projected_on_hand, net_requirement,
		planned_order_release, planned_order_receipt, is_critical
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

// SaveRun commits the run header plus its complete node set in one
// transaction.
func (r *RunRepository) SaveRun(ctx context.Context, run *entities.Run, nodes []*entities.RequirementNode) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = tx.ExecContext(ctx, insertRunQuery,
		run.ID, run.Name, run.Description, int64(run.MPSID),
		run.LeadTimeFactor, run.IncludeSafetyStock, run.RunDate)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to insert run %s: %w", run.ID, err)
	}

	for _, node := range nodes {
		_, err = tx.ExecContext(ctx, insertNodeQuery,
			run.ID, int64(node.ID), int64(node.ItemID),
			bomIDValue(node.BOMID), lineIDValue(node.MPSLineID), nodeIDValue(node.ParentID),
			node.RequiredDate, node.OrderReleaseDate,
			node.GrossRequirement, node.ProjectedOnHand, node.NetRequirement,
			node.PlannedOrderRelease, node.PlannedOrderReceipt, node.IsCritical)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert node %d of run %s: %w", node.ID, run.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun returns the run header, or (nil, nil) when unknown.
func (r *RunRepository) GetRun(ctx context.Context, id entities.RunID) (*entities.Run, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row,
		`SELECT id, name, description, mps_id, lead_time_factor, include_safety_stock, run_date
		 FROM mrp_runs WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return row.toEntity(), nil
}

// GetRunNodes returns the run's nodes in creation (id) order.
func (r *RunRepository) GetRunNodes(ctx context.Context, id entities.RunID) ([]*entities.RequirementNode, error) {
	var rows []nodeRow
	err := r.db.SelectContext(ctx, &rows,
		`SELECT run_id, id, item_id, bom_id, mps_line_id, parent_id,
		        required_date, order_release_date,
		        gross_requirement, projected_on_hand, net_requirement,
		        planned_order_release, planned_order_receipt, is_critical
		 FROM mrp_nodes WHERE run_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get nodes for run %s: %w", id, err)
	}

	nodes := make([]*entities.RequirementNode, 0, len(rows))
	for i := range rows {
		nodes = append(nodes, rows[i].toEntity())
	}
	return nodes, nil
}

// ListRuns returns run headers in creation order, optionally filtered to
// one MPS.
func (r *RunRepository) ListRuns(ctx context.Context, mpsID *entities.MPSID) ([]*entities.Run, error) {
	query := `SELECT id, name, description, mps_id, lead_time_factor, include_safety_stock, run_date
	          FROM mrp_runs`
	var args []interface{}
	if mpsID != nil {
		query += ` WHERE mps_id = $1`
		args = append(args, int64(*mpsID))
	}
	query += ` ORDER BY run_date`

	var rows []runRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*entities.Run, 0, len(rows))
	for i := range rows {
		runs = append(runs, rows[i].toEntity())
	}
	return runs, nil
}

// DeleteRun removes the run's nodes and then its header inside one
// transaction, so no orphan nodes can survive.
func (r *RunRepository) DeleteRun(ctx context.Context, id entities.RunID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM mrp_nodes WHERE run_id = $1`, id); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete nodes for run %s: %w", id, err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM mrp_runs WHERE id = $1`, id)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete run %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to check delete result for run %s: %w", id, err)
	}
	if affected == 0 {
		tx.Rollback()
		return &entities.RunNotFoundError{RunID: id}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete of run %s: %w", id, err)
	}
	return nil
}

func (row *runRow) toEntity() *entities.Run {
	return &entities.Run{
		ID:                 row.ID,
		Name:               row.Name,
		Description:        row.Description,
		MPSID:              entities.MPSID(row.MPSID),
		LeadTimeFactor:     row.LeadTimeFactor,
		IncludeSafetyStock: row.IncludeSafetyStock,
		RunDate:            row.RunDate,
	}
}

func (row *nodeRow) toEntity() *entities.RequirementNode {
	node := &entities.RequirementNode{
		ID:                  entities.NodeID(row.ID),
		RunID:               row.RunID,
		ItemID:              entities.ItemID(row.ItemID),
		RequiredDate:        row.RequiredDate,
		OrderReleaseDate:    row.OrderReleaseDate,
		GrossRequirement:    row.GrossRequirement,
		ProjectedOnHand:     row.ProjectedOnHand,
		NetRequirement:      row.NetRequirement,
		PlannedOrderRelease: row.PlannedOrderRelease,
		PlannedOrderReceipt: row.PlannedOrderReceipt,
		IsCritical:          row.IsCritical,
	}
	if row.BOMID != nil {
		id := entities.BOMID(*row.BOMID)
		node.BOMID = &id
	}
	if row.MPSLineID != nil {
		id := entities.ScheduleLineID(*row.MPSLineID)
		node.MPSLineID = &id
	}
	if row.ParentID != nil {
		id := entities.NodeID(*row.ParentID)
		node.ParentID = &id
	}
	return node
}

func bomIDValue(id *entities.BOMID) interface{} {
	if id == nil {
		return nil
	}
	return int64(*id)
}

func lineIDValue(id *entities.ScheduleLineID) interface{} {
	if id == nil {
		return nil
	}
	return int64(*id)
}

func nodeIDValue(id *entities.NodeID) interface{} {
	if id == nil {
		return nil
	}
	return int64(*id)
}
