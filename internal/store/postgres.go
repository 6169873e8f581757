package store

import (
	"context"

	"gorm.io/gorm"
)

// Postgres backs Store with the hosted Postgres: gorm for reads and writes on
// the pooled endpoint, LISTEN/NOTIFY on a direct connection for change
// notifications (poolers don't forward NOTIFY).
type Postgres struct {
	db       *gorm.DB
	listener *Listener
}

func NewPostgres(db *gorm.DB, listener *Listener) *Postgres {
	return &Postgres{db: db, listener: listener}
}

func (p *Postgres) Fetch(ctx context.Context, collection, orderBy string, dest any) error {
	return p.db.WithContext(ctx).Table(collection).Order(orderBy).Find(dest).Error
}

func (p *Postgres) Insert(ctx context.Context, collection string, record any) error {
	return p.db.WithContext(ctx).Table(collection).Create(record).Error
}

func (p *Postgres) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	res := p.db.WithContext(ctx).Table(collection).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (p *Postgres) Subscribe(collection string, onChange func()) (func(), error) {
	return p.listener.Subscribe(collection, onChange)
}

func (p *Postgres) OnConnState(fn func(up bool)) {
	p.listener.OnConnState(fn)
}
