package cron

import (
	"context"
	"errors"

	"github.com/sahilchouksey/unifriend-api/database"
)

// AuditDanglingApplications counts applications whose university was
// deleted after submission. Nothing is modified.
func (m *CronManager) AuditDanglingApplications(ctx context.Context) error {
	count, err := m.store.CountDanglingApplications(ctx)
	if err != nil {
		return err
	}

	m.danglingApplications.Set(float64(count))
	entry := m.log.WithField("count", count)
	if count > 0 {
		entry.Warn("Applications reference universities that no longer exist")
		return nil
	}
	entry.Debug("No dangling applications")
	return nil
}

// AuditOrphanedUniversityGrants counts university admin grants whose
// university was deleted. Such grants authorize nothing.
func (m *CronManager) AuditOrphanedUniversityGrants(ctx context.Context) error {
	grants, err := m.store.ListUniversityAdminGrants(ctx)
	if err != nil {
		return err
	}

	var orphaned []string
	for _, grant := range grants {
		_, err := m.store.GetUniversity(ctx, grant.UniversityID)
		switch {
		case errors.Is(err, database.ErrNotFound):
			orphaned = append(orphaned, grant.UserID)
		case err != nil:
			return err
		}
	}

	m.orphanedGrants.Set(float64(len(orphaned)))
	if len(orphaned) > 0 {
		m.log.WithField("user_ids", orphaned).Warn("University admin grants reference universities that no longer exist")
	}
	return nil
}
