package repositories

import (
	"database/sql"

	"github.com/alimgiray/gitcourt/internal/models"
)

type AuditLogRepository struct {
	db *sql.DB
}

func NewAuditLogRepository(db *sql.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

// Create creates a new audit log entry
func (r *AuditLogRepository) Create(entry *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (id, action, resource_type, resource_id, details, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		entry.ID, entry.Action, entry.ResourceType, entry.ResourceID, entry.Details, entry.CreatedAt,
	)

	return err
}

// GetByResource retrieves audit log entries for a resource, newest first
func (r *AuditLogRepository) GetByResource(resourceType, resourceID string) ([]*models.AuditLog, error) {
	query := `
		SELECT id, action, resource_type, resource_id, details, created_at
		FROM audit_logs
		WHERE resource_type = ? AND resource_id = ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, resourceType, resourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		entry := &models.AuditLog{}
		err := rows.Scan(&entry.ID, &entry.Action, &entry.ResourceType, &entry.ResourceID, &entry.Details, &entry.CreatedAt)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
