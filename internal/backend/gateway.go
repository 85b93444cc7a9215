// internal/backend/gateway.go
package backend

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/rishvigems/gems-backend/internal/config"
	"github.com/rishvigems/gems-backend/internal/database"
	"github.com/rishvigems/gems-backend/internal/models"
)

// Gateway is the single point of truth for whether the managed backend is
// configured and reachable. It owns the document-store and blob-store handles;
// in demo mode both stay nil and every consumer falls back to local behavior.
type Gateway struct {
	cfg *config.Config
	db  *gorm.DB
	s3  *s3.S3
}

// New wires the backend handles according to configuration. A missing or
// placeholder configuration is a supported mode, not an error: the gateway
// comes up in demo mode with nil handles. Connection failures against a
// configured backend are also demoted to demo mode so the storefront keeps
// serving the fallback catalog.
func New(cfg *config.Config) *Gateway {
	g := &Gateway{cfg: cfg}

	if !cfg.Backend.Configured() {
		logrus.Warn("Managed backend not configured, running in demo mode")
		logrus.Warn("Set the BACKEND_* values in .env to connect a live backend")
		return g
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logrus.WithError(err).Error("Document store unreachable, falling back to demo mode")
		return g
	}

	if err := database.RunMigrations(db); err != nil {
		logrus.WithError(err).Error("Migrations failed, falling back to demo mode")
		database.Close(db)
		return g
	}

	if err := database.SeedInitialData(db); err != nil {
		logrus.WithError(err).Warn("Initial data seeding failed")
	}

	g.db = db

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		logrus.WithError(err).Error("Blob store session failed, uploads will use the placeholder image")
	} else if cfg.AWS.AccessKeyID != "" {
		g.s3 = s3.New(sess)
	}

	logrus.WithField("project_id", cfg.Backend.ProjectID).Info("Managed backend configured")
	return g
}

// Live reports whether the document store handle is available. False means
// demo mode.
func (g *Gateway) Live() bool {
	return g.db != nil
}

// DB returns the document-store handle, nil in demo mode.
func (g *Gateway) DB() *gorm.DB {
	return g.db
}

// Blob returns the blob-store client, nil when storage is unavailable.
func (g *Gateway) Blob() *s3.S3 {
	return g.s3
}

// Bucket returns the configured blob-store bucket name.
func (g *Gateway) Bucket() string {
	return g.cfg.Backend.StorageBucket
}

// CheckConnection issues a minimal one-row read against the products table.
// It never returns an error; any failure is reported as false.
func (g *Gateway) CheckConnection(ctx context.Context) bool {
	if g.db == nil {
		return false
	}

	var probe []models.Product
	if err := g.db.WithContext(ctx).Limit(1).Find(&probe).Error; err != nil {
		logrus.WithError(err).Warn("Backend connection check failed")
		return false
	}
	return true
}

// Close releases the document-store connection.
func (g *Gateway) Close() {
	if g.db != nil {
		database.Close(g.db)
	}
}

// Mode describes the operating mode for health reporting.
func (g *Gateway) Mode() string {
	if g.Live() {
		return "live"
	}
	return "demo"
}
