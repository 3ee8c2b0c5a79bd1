package cron

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sirupsen/logrus"
)

// jobTimeout bounds one run of any job.
const jobTimeout = 2 * time.Minute

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron  *cron.Cron
	store database.Storage
	log   logrus.FieldLogger

	danglingApplications prometheus.Gauge
	orphanedGrants       prometheus.Gauge
}

// NewCronManager creates a new cron manager. Job gauges are registered
// on reg when it is not nil.
func NewCronManager(store database.Storage, log logrus.FieldLogger, reg prometheus.Registerer) *CronManager {
	m := &CronManager{
		// Create cron with seconds precision
		cron:  cron.New(cron.WithSeconds()),
		store: store,
		log:   log.WithField("component", "cron"),
		danglingApplications: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "unifriend_dangling_applications",
			Help: "Applications whose university no longer exists.",
		}),
		orphanedGrants: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "unifriend_orphaned_university_admin_grants",
			Help: "University admin grants whose university no longer exists.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.danglingApplications, m.orphanedGrants)
	}
	return m
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	m.log.Info("Starting cron jobs...")

	// Register all jobs
	if err := m.registerJobs(); err != nil {
		return err
	}

	// Start the cron scheduler
	m.cron.Start()

	m.log.Info("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs and waits for running ones
func (m *CronManager) Stop() {
	m.log.Info("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	m.log.Info("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// 1. Every hour: count applications left behind by deleted universities
	_, err := m.cron.AddFunc("0 0 * * * *", func() {
		m.run("audit_dangling_applications", m.AuditDanglingApplications)
	})
	if err != nil {
		return err
	}

	// 2. Every hour at :30: count university admin grants left behind
	_, err = m.cron.AddFunc("0 30 * * * *", func() {
		m.run("audit_orphaned_university_grants", m.AuditOrphanedUniversityGrants)
	})
	if err != nil {
		return err
	}

	m.log.Info("All cron jobs registered successfully")
	return nil
}

func (m *CronManager) run(jobName string, job func(ctx context.Context) error) {
	started := time.Now()
	entry := m.log.WithField("job", jobName)
	entry.Info("[CRON] Starting job")

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if err := job(ctx); err != nil {
		entry.WithError(err).Error("[CRON] Job failed")
		return
	}
	entry.WithField("duration", time.Since(started).String()).Info("[CRON] Completed job")
}
