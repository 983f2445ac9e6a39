package dc

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"Cataphract/internal/campaign/app/port"
	"Cataphract/internal/campaign/entity"
	"Cataphract/internal/campaign/infra/persistence/model"
	"Cataphract/internal/shared/logs"
)

type CampaignID = entity.CampaignID

// persistSnapshot 是某个版本下整棵聚合树的序列化快照。
// 在 actor 协程里编码完成后才交给后台写库，写库端只见字节不见实体。
type persistSnapshot struct {
	campaignID CampaignID
	document   []byte
	version    uint64
}

// CampaignDC 是战役的写穿透缓冲：实体常驻内存，改动标脏，
// 后台单写协程按“最新版本覆盖旧版本”落库。
type CampaignDC struct {
	repo       port.CampaignRepository
	entity     *entity.Campaign
	flushEvery time.Duration

	mu      sync.Mutex
	pending *persistSnapshot
	version uint64
	dirty   bool
	closed  bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func NewCampaignDC(repo port.CampaignRepository) *CampaignDC {
	d := &CampaignDC{
		repo:       repo,
		flushEvery: 3000 * time.Millisecond,
		wake:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
	go d.writerLoop()
	return d
}

func (d *CampaignDC) Load(ctx context.Context, campaignID CampaignID) (*entity.Campaign, error) {
	if d.repo == nil {
		return nil, errors.New("campaign repository is nil")
	}
	c, err := d.repo.Load(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	d.entity = c
	return c, nil
}

// Adopt 直接接管一棵已在内存里的聚合树（新建战役/导入想定场景）。
func (d *CampaignDC) Adopt(c *entity.Campaign) {
	d.entity = c
	d.MarkDirty()
}

// MarkDirty 标记实体有待落库的改动，必须在 actor 协程里调用。
func (d *CampaignDC) MarkDirty() {
	d.mu.Lock()
	d.dirty = true
	d.mu.Unlock()
}

func (d *CampaignDC) IsDirty() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}

// Flush 把当前实体编码成快照排队落库。编码在调用方协程完成，
// 之后实体再怎么改都不影响已入队的版本。
// 编码失败时脏标不清，下一轮 Flush 重试。
func (d *CampaignDC) Flush(ctx context.Context) error {
	_ = ctx
	if !d.IsDirty() {
		return nil
	}
	if d.repo == nil {
		return errors.New("campaign repository is nil")
	}
	s, err := d.buildNextSnapshot()
	if err != nil {
		logs.Error("campaign snapshot encode failed",
			zap.Int("campaign_id", int(d.entity.ID)),
			zap.Error(err),
		)
		return err
	}
	if s == nil {
		return nil
	}
	d.enqueueLatest(s)
	return nil
}

func (d *CampaignDC) Entity() *entity.Campaign {
	return d.entity
}

func (d *CampaignDC) FlushEvery() time.Duration {
	return d.flushEvery
}

func (d *CampaignDC) Close(ctx context.Context) error {
	_ = d.Flush(ctx)

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.stop)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *CampaignDC) buildNextSnapshot() (*persistSnapshot, error) {
	if d.entity == nil {
		return nil, nil
	}
	row, err := model.Encode(d.entity)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	d.version++
	version := d.version
	d.dirty = false
	d.mu.Unlock()

	return &persistSnapshot{
		campaignID: d.entity.ID,
		document:   row.Document,
		version:    version,
	}, nil
}

func (d *CampaignDC) enqueueLatest(s *persistSnapshot) {
	if s == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.version < s.version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *CampaignDC) popPending() *persistSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.pending
	d.pending = nil
	return s
}

func (d *CampaignDC) requeueOnError(s *persistSnapshot) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	if d.pending == nil || d.pending.version < s.version {
		d.pending = s
	}
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *CampaignDC) writerLoop() {
	defer close(d.done)

	for {
		select {
		case <-d.wake:
			d.consumePending()
		case <-d.stop:
			d.consumePending()
			return
		}
	}
}

func (d *CampaignDC) consumePending() {
	for {
		s := d.popPending()
		if s == nil {
			return
		}
		c, err := model.Decode(s.document)
		if err != nil {
			// 快照本身损坏，重试无意义，丢弃并留痕。
			logs.Error("campaign snapshot decode failed",
				zap.Int("campaign_id", int(s.campaignID)),
				zap.Uint64("version", s.version),
				zap.Error(err),
			)
			continue
		}
		if err := d.repo.Save(context.TODO(), c); err != nil {
			// 写库失败时重排当前快照；若已有更新快照，会被更高 version 覆盖。
			d.requeueOnError(s)
			time.Sleep(200 * time.Millisecond)
			continue
		}
	}
}
