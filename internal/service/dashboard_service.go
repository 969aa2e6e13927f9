package service

import (
	"github.com/reflet/internal/content"
	"github.com/reflet/internal/db"
	"gorm.io/gorm"
)

// DashboardService aggregates the counters shown on the admin home page.
type DashboardService struct {
	db *gorm.DB
}

// DashboardOverview is a snapshot of the site's stored data.
type DashboardOverview struct {
	Products        int64               `json:"products"`
	ProductsInStock int64               `json:"products_in_stock"`
	GalleryImages   int64               `json:"gallery_images"`
	Projects        int64               `json:"projects"`
	ActiveProjects  int64               `json:"active_projects"`
	Messages        int64               `json:"messages"`
	UnreadMessages  int64               `json:"unread_messages"`
	ContentEdits    int64               `json:"content_edits"`
	HiddenPages     int64               `json:"hidden_pages"`
	RecentMessages  []db.ContactMessage `json:"recent_messages"`
}

const dashboardRecentMessages = 5

// NewDashboardService creates a DashboardService.
func NewDashboardService(gdb *gorm.DB) *DashboardService {
	return &DashboardService{db: gdb}
}

// Overview counts every entity in a single pass.
func (s *DashboardService) Overview() (DashboardOverview, error) {
	var out DashboardOverview

	counts := []struct {
		model any
		where string
		arg   any
		dest  *int64
	}{
		{&db.Product{}, "", nil, &out.Products},
		{&db.Product{}, "in_stock = ?", true, &out.ProductsInStock},
		{&db.GalleryImage{}, "", nil, &out.GalleryImages},
		{&db.Project{}, "", nil, &out.Projects},
		{&db.Project{}, "is_active = ?", true, &out.ActiveProjects},
		{&db.ContactMessage{}, "", nil, &out.Messages},
		{&db.ContactMessage{}, "is_read = ?", false, &out.UnreadMessages},
		{&db.SiteContent{}, "content_key <> ?", content.VisibilityKey, &out.ContentEdits},
		{&db.PageSetting{}, "is_visible = ?", false, &out.HiddenPages},
	}
	for _, c := range counts {
		query := s.db.Model(c.model)
		if c.where != "" {
			query = query.Where(c.where, c.arg)
		}
		if err := query.Count(c.dest).Error; err != nil {
			return out, err
		}
	}

	if err := s.db.Order("created_at desc").Order("id desc").
		Limit(dashboardRecentMessages).
		Find(&out.RecentMessages).Error; err != nil {
		return out, err
	}
	return out, nil
}
