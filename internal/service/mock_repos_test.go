package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "inventra/backend/pkg/errors"

	"inventra/backend/internal/model"
	"inventra/backend/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
	racer *model.User // 模拟并发：Create 前由另一请求抢先提交的用户
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

// Create 与唯一索引一致：用户名或邮箱重复返回 gorm.ErrDuplicatedKey
func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.racer != nil {
		m.users[m.racer.UserID] = m.racer
		m.racer = nil
	}
	for _, u := range m.users {
		if u.Username == user.Username || (user.Email != "" && strings.EqualFold(u.Email, user.Email)) {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	user.CreatedAt = time.Now()
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) List(_ context.Context, keyword, status string, offset, limit int) ([]model.User, int64, error) {
	var result []model.User
	for _, u := range m.users {
		if keyword != "" && !strings.Contains(strings.ToLower(u.Username), strings.ToLower(keyword)) {
			continue
		}
		if status != "" && u.Status != status {
			continue
		}
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return paginate(result, offset, limit), int64(len(result)), nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

// ── Mock FloorRepository ──

type mockFloorRepo struct {
	floors map[string]*model.Floor
	seq    int
	racer  *model.Floor // 模拟并发：Create 前由另一请求抢先提交的楼层
}

func newMockFloorRepo() *mockFloorRepo {
	return &mockFloorRepo{floors: make(map[string]*model.Floor)}
}

func (m *mockFloorRepo) Create(_ context.Context, floor *model.Floor) error {
	if m.racer != nil {
		m.floors[m.racer.FloorID] = m.racer
		m.racer = nil
	}
	for _, f := range m.floors {
		if f.IsActive && strings.EqualFold(f.Name, floor.Name) {
			return gorm.ErrDuplicatedKey
		}
	}
	if floor.FloorID == "" {
		m.seq++
		floor.FloorID = fmt.Sprintf("floor-%d", m.seq)
	}
	m.floors[floor.FloorID] = floor
	return nil
}

func (m *mockFloorRepo) GetByID(_ context.Context, id string) (*model.Floor, error) {
	if f, ok := m.floors[id]; ok && f.IsActive {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFloorRepo) GetByName(_ context.Context, name string) (*model.Floor, error) {
	for _, f := range m.floors {
		if f.IsActive && strings.EqualFold(f.Name, name) {
			return f, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFloorRepo) List(_ context.Context) ([]model.Floor, error) {
	var result []model.Floor
	for _, f := range m.floors {
		if f.IsActive {
			result = append(result, *f)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockFloorRepo) Update(_ context.Context, floor *model.Floor) error {
	m.floors[floor.FloorID] = floor
	return nil
}

func (m *mockFloorRepo) Delete(_ context.Context, id string, _ string) error {
	if f, ok := m.floors[id]; ok {
		f.IsActive = false
	}
	return nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms  map[string]*model.Room
	floors *mockFloorRepo
	seq    int
	racer  *model.Room // 模拟并发：Create 前由另一请求抢先提交的房间
}

func newMockRoomRepo(floors *mockFloorRepo) *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[string]*model.Room), floors: floors}
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	if m.racer != nil {
		m.rooms[m.racer.RoomID] = m.racer
		m.racer = nil
	}
	for _, r := range m.rooms {
		if r.IsActive && r.FloorID == room.FloorID && strings.EqualFold(r.Name, room.Name) {
			return gorm.ErrDuplicatedKey
		}
	}
	if room.RoomID == "" {
		m.seq++
		room.RoomID = fmt.Sprintf("room-%d", m.seq)
	}
	m.rooms[room.RoomID] = room
	return nil
}

// GetByID 模拟 Preload("Floor")
func (m *mockRoomRepo) GetByID(_ context.Context, id string) (*model.Room, error) {
	r, ok := m.rooms[id]
	if !ok || !r.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	if f, ok := m.floors.floors[r.FloorID]; ok {
		cp.Floor = f
	}
	return &cp, nil
}

func (m *mockRoomRepo) GetByName(_ context.Context, floorID, name string) (*model.Room, error) {
	for _, r := range m.rooms {
		if r.IsActive && r.FloorID == floorID && strings.EqualFold(r.Name, name) {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(_ context.Context, floorID string) ([]model.Room, error) {
	var result []model.Room
	for _, r := range m.rooms {
		if !r.IsActive || (floorID != "" && r.FloorID != floorID) {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockRoomRepo) CountByFloor(_ context.Context, floorID string) (int64, error) {
	var n int64
	for _, r := range m.rooms {
		if r.IsActive && r.FloorID == floorID {
			n++
		}
	}
	return n, nil
}

func (m *mockRoomRepo) Update(_ context.Context, room *model.Room) error {
	cp := *room
	cp.Floor = nil
	m.rooms[room.RoomID] = &cp
	return nil
}

func (m *mockRoomRepo) Delete(_ context.Context, id string, _ string) error {
	if r, ok := m.rooms[id]; ok {
		r.IsActive = false
	}
	return nil
}

// ── Mock CategoryRepository ──

type mockCategoryRepo struct {
	categories map[string]*model.Category
	seq        int
	advanceErr error           // 注入 AdvanceSerialCounter 的数据库错误
	racer      *model.Category // 模拟并发：Create/Update 前由另一请求抢先提交的分类
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[string]*model.Category)}
}

// admitRacer 放入并发提交的分类，并按唯一索引检查 cat
func (m *mockCategoryRepo) admitRacer(cat *model.Category) error {
	if m.racer != nil {
		m.categories[m.racer.CategoryID] = m.racer
		m.racer = nil
	}
	for _, c := range m.categories {
		if !c.IsActive || c.CategoryID == cat.CategoryID {
			continue
		}
		if strings.EqualFold(c.Name, cat.Name) {
			return gorm.ErrDuplicatedKey
		}
		if cat.Abbreviation != "" && strings.EqualFold(c.Abbreviation, cat.Abbreviation) {
			return gorm.ErrDuplicatedKey
		}
	}
	return nil
}

func (m *mockCategoryRepo) Create(_ context.Context, cat *model.Category) error {
	if err := m.admitRacer(cat); err != nil {
		return err
	}
	if cat.CategoryID == "" {
		m.seq++
		cat.CategoryID = fmt.Sprintf("cat-%d", m.seq)
	}
	m.categories[cat.CategoryID] = cat
	return nil
}

func (m *mockCategoryRepo) GetByID(_ context.Context, id string) (*model.Category, error) {
	if c, ok := m.categories[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCategoryRepo) GetByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range m.categories {
		if c.IsActive && strings.EqualFold(c.Name, name) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCategoryRepo) GetByAbbreviation(_ context.Context, abbr string) (*model.Category, error) {
	for _, c := range m.categories {
		if c.IsActive && strings.EqualFold(c.Abbreviation, abbr) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	var result []model.Category
	for _, c := range m.categories {
		if c.IsActive {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockCategoryRepo) ListWithItemCounts(ctx context.Context, offset, limit int) ([]repository.CategoryItemCount, int64, error) {
	cats, _ := m.List(ctx)
	rows := make([]repository.CategoryItemCount, len(cats))
	for i := range cats {
		rows[i] = repository.CategoryItemCount{Category: cats[i]}
	}
	return paginate(rows, offset, limit), int64(len(rows)), nil
}

// Update 与真实实现一致：只改名称与缩写
func (m *mockCategoryRepo) Update(_ context.Context, cat *model.Category) error {
	if err := m.admitRacer(cat); err != nil {
		return err
	}
	stored, ok := m.categories[cat.CategoryID]
	if !ok {
		return nil
	}
	stored.Name = cat.Name
	stored.Abbreviation = cat.Abbreviation
	stored.UpdatedBy = cat.UpdatedBy
	return nil
}

func (m *mockCategoryRepo) Delete(_ context.Context, id string, _ string) error {
	if c, ok := m.categories[id]; ok {
		c.IsActive = false
	}
	return nil
}

// AdvanceSerialCounter 条件与 SQL 的 WHERE 子句一致
func (m *mockCategoryRepo) AdvanceSerialCounter(_ context.Context, id string, count int) (*model.Category, error) {
	if m.advanceErr != nil {
		return nil, m.advanceErr
	}
	c, ok := m.categories[id]
	if !ok || !c.IsActive || c.Abbreviation == "" {
		return nil, gorm.ErrRecordNotFound
	}
	c.LastItemSerialNumber += count
	cp := *c
	return &cp, nil
}

// ── Mock SubCategoryRepository ──

type mockSubCategoryRepo struct {
	subs map[string]*model.SubCategory
	seq  int
}

func newMockSubCategoryRepo() *mockSubCategoryRepo {
	return &mockSubCategoryRepo{subs: make(map[string]*model.SubCategory)}
}

func (m *mockSubCategoryRepo) Create(_ context.Context, sub *model.SubCategory) error {
	if sub.SubCategoryID == "" {
		m.seq++
		sub.SubCategoryID = fmt.Sprintf("sub-%d", m.seq)
	}
	m.subs[sub.SubCategoryID] = sub
	return nil
}

func (m *mockSubCategoryRepo) GetByID(_ context.Context, id string) (*model.SubCategory, error) {
	if s, ok := m.subs[id]; ok && s.IsActive {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubCategoryRepo) GetByName(_ context.Context, categoryID, name string) (*model.SubCategory, error) {
	for _, s := range m.subs {
		if s.IsActive && s.CategoryID == categoryID && strings.EqualFold(s.Name, name) {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubCategoryRepo) GetByAbbreviation(_ context.Context, categoryID, abbr string) (*model.SubCategory, error) {
	for _, s := range m.subs {
		if s.IsActive && s.CategoryID == categoryID && strings.EqualFold(s.Abbreviation, abbr) {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubCategoryRepo) ListByCategory(_ context.Context, categoryID string) ([]model.SubCategory, error) {
	var result []model.SubCategory
	for _, s := range m.subs {
		if s.IsActive && s.CategoryID == categoryID {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockSubCategoryRepo) Update(_ context.Context, sub *model.SubCategory) error {
	m.subs[sub.SubCategoryID] = sub
	return nil
}

func (m *mockSubCategoryRepo) Delete(_ context.Context, id string, _ string) error {
	if s, ok := m.subs[id]; ok {
		s.IsActive = false
	}
	return nil
}

// ── Mock ItemRepository ──

// mockItemRepo 保存副本，GetByID 返回的对象修改后需 Update 才生效
type mockItemRepo struct {
	items      map[string]*model.Item
	order      []string
	categories *mockCategoryRepo
	floors     *mockFloorRepo
	rooms      *mockRoomRepo
	seq        int
	createErr  error
}

func newMockItemRepo(categories *mockCategoryRepo, floors *mockFloorRepo, rooms *mockRoomRepo) *mockItemRepo {
	return &mockItemRepo{
		items:      make(map[string]*model.Item),
		categories: categories,
		floors:     floors,
		rooms:      rooms,
	}
}

func (m *mockItemRepo) BatchCreate(_ context.Context, items []*model.Item) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, it := range items {
		for _, existing := range m.items {
			if existing.SerialNumber == it.SerialNumber {
				return fmt.Errorf("duplicate key value violates unique constraint \"items_serial_number_key\"")
			}
		}
	}
	for _, it := range items {
		if it.ItemID == "" {
			m.seq++
			it.ItemID = fmt.Sprintf("item-%d", m.seq)
		}
		if it.Version == 0 {
			it.Version = 1
		}
		cp := *it
		cp.Category, cp.Floor, cp.Room = nil, nil, nil
		m.items[it.ItemID] = &cp
		m.order = append(m.order, it.ItemID)
	}
	return nil
}

// GetByID 模拟 Preload 关联
func (m *mockItemRepo) GetByID(_ context.Context, id string) (*model.Item, error) {
	it, ok := m.items[id]
	if !ok || !it.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	return m.withRelations(it), nil
}

func (m *mockItemRepo) withRelations(it *model.Item) *model.Item {
	cp := *it
	if c, ok := m.categories.categories[it.CategoryID]; ok {
		cc := *c
		cp.Category = &cc
	}
	if f, ok := m.floors.floors[it.FloorID]; ok {
		cp.Floor = f
	}
	if r, ok := m.rooms.rooms[it.RoomID]; ok {
		cp.Room = r
	}
	return &cp
}

func (m *mockItemRepo) matches(it *model.Item, f repository.ItemFilter) bool {
	if !it.IsActive {
		return false
	}
	if f.CategoryID != "" && it.CategoryID != f.CategoryID {
		return false
	}
	if f.FloorID != "" && it.FloorID != f.FloorID {
		return false
	}
	if f.RoomID != "" && it.RoomID != f.RoomID {
		return false
	}
	if f.Status != "" && it.Status != f.Status {
		return false
	}
	if f.Source != "" && it.Source != f.Source {
		return false
	}
	if f.ModelNumber != "" && it.ModelNumber != f.ModelNumber {
		return false
	}
	if f.NameContains != "" && !strings.Contains(strings.ToLower(it.Name), strings.ToLower(f.NameContains)) {
		return false
	}
	if f.SerialPrefix != "" && !strings.HasPrefix(it.SerialNumber, f.SerialPrefix) {
		return false
	}
	if f.AcquiredFrom != nil && it.AcquiredDate.Before(*f.AcquiredFrom) {
		return false
	}
	if f.AcquiredTo != nil && it.AcquiredDate.After(*f.AcquiredTo) {
		return false
	}
	return true
}

func (m *mockItemRepo) List(_ context.Context, filter repository.ItemFilter, offset, limit int) ([]model.Item, int64, error) {
	var result []model.Item
	for _, id := range m.order {
		if it := m.items[id]; m.matches(it, filter) {
			result = append(result, *m.withRelations(it))
		}
	}
	return paginate(result, offset, limit), int64(len(result)), nil
}

// Update 与真实实现一致：版本号不匹配返回乐观锁错误
func (m *mockItemRepo) Update(_ context.Context, item *model.Item) error {
	stored, ok := m.items[item.ItemID]
	if !ok || stored.Version != item.Version {
		return pkgerrors.ErrOptimisticLock
	}
	item.Version++
	cp := *item
	cp.Category, cp.Floor, cp.Room = nil, nil, nil
	m.items[item.ItemID] = &cp
	return nil
}

func (m *mockItemRepo) CountActive(ctx context.Context, filter repository.ItemFilter) (int64, error) {
	_, total, err := m.List(ctx, filter, 0, 0)
	return total, err
}

func (m *mockItemRepo) StatusCounts(_ context.Context, categoryID string) (*repository.ItemStatusCounts, error) {
	c := &repository.ItemStatusCounts{TotalValue: decimal.Zero}
	for _, it := range m.items {
		if !m.matches(it, repository.ItemFilter{CategoryID: categoryID}) {
			continue
		}
		c.Total++
		c.TotalValue = c.TotalValue.Add(it.Cost)
		switch it.Status {
		case model.ItemStatusWorking:
			c.Working++
		case model.ItemStatusRepairable:
			c.Repairable++
		case model.ItemStatusNotWorking:
			c.NotWorking++
		}
	}
	return c, nil
}

func (m *mockItemRepo) CountAcquiredBefore(_ context.Context, before time.Time) (int64, error) {
	var n int64
	for _, it := range m.items {
		if it.IsActive && it.AcquiredDate.Before(before) {
			n++
		}
	}
	return n, nil
}

func (m *mockItemRepo) AcquisitionByYear(_ context.Context, categoryID string) ([]repository.YearAcquisition, error) {
	byYear := make(map[int]*repository.YearAcquisition)
	for _, it := range m.items {
		if !m.matches(it, repository.ItemFilter{CategoryID: categoryID}) {
			continue
		}
		y := it.AcquiredDate.Year()
		if byYear[y] == nil {
			byYear[y] = &repository.YearAcquisition{Year: y, Value: decimal.Zero}
		}
		byYear[y].Count++
		byYear[y].Value = byYear[y].Value.Add(it.Cost)
	}
	var result []repository.YearAcquisition
	for _, v := range byYear {
		result = append(result, *v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Year < result[j].Year })
	return result, nil
}

func (m *mockItemRepo) GroupByModel(ctx context.Context, categoryID string) ([]repository.ItemGroup, error) {
	groups, _, err := m.GroupReport(ctx, categoryID, 0, 0)
	return groups, err
}

func (m *mockItemRepo) GroupReport(_ context.Context, categoryID string, offset, limit int) ([]repository.ItemGroup, int64, error) {
	index := make(map[string]*repository.ItemGroup)
	var keys []string
	for _, id := range m.order {
		it := m.items[id]
		if !m.matches(it, repository.ItemFilter{CategoryID: categoryID}) {
			continue
		}
		key := it.Name + "|" + it.CategoryID + "|" + it.ModelNumber
		g, ok := index[key]
		if !ok {
			g = &repository.ItemGroup{Name: it.Name, CategoryID: it.CategoryID, ModelNumber: it.ModelNumber}
			index[key] = g
			keys = append(keys, key)
		}
		g.Total++
		switch it.Status {
		case model.ItemStatusWorking:
			g.Working++
		case model.ItemStatusRepairable:
			g.Repairable++
		case model.ItemStatusNotWorking:
			g.NotWorking++
		}
	}
	result := make([]repository.ItemGroup, len(keys))
	for i, k := range keys {
		result[i] = *index[k]
	}
	return paginate(result, offset, limit), int64(len(result)), nil
}

func (m *mockItemRepo) RoomStatusCounts(_ context.Context) ([]repository.RoomStatusCount, error) {
	return nil, nil
}

// ── Mock ActivityLogRepository ──

type mockActivityLogRepo struct {
	logs      []model.ActivityLog
	seq       int
	createErr error // 注入写入失败
}

func newMockActivityLogRepo() *mockActivityLogRepo {
	return &mockActivityLogRepo{}
}

func (m *mockActivityLogRepo) Create(_ context.Context, log *model.ActivityLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	log.LogID = fmt.Sprintf("log-%04d", m.seq)
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockActivityLogRepo) BatchCreate(ctx context.Context, logs []*model.ActivityLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, l := range logs {
		_ = m.Create(ctx, l)
	}
	return nil
}

// sorted created_at 倒序，相同时按 log_id 倒序
func (m *mockActivityLogRepo) sorted(keep func(*model.ActivityLog) bool) []model.ActivityLog {
	var result []model.ActivityLog
	for i := range m.logs {
		if keep(&m.logs[i]) {
			result = append(result, m.logs[i])
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].LogID > result[j].LogID
	})
	return result
}

func (m *mockActivityLogRepo) List(_ context.Context, filter repository.ActivityLogFilter, offset, limit int) ([]model.ActivityLog, int64, error) {
	result := m.sorted(func(l *model.ActivityLog) bool {
		if filter.StartAt != nil && l.CreatedAt.Before(*filter.StartAt) {
			return false
		}
		if filter.EndAt != nil && l.CreatedAt.After(*filter.EndAt) {
			return false
		}
		return true
	})
	return paginate(result, offset, limit), int64(len(result)), nil
}

func (m *mockActivityLogRepo) ListRecent(_ context.Context, limit int) ([]model.ActivityLog, error) {
	result := m.sorted(func(*model.ActivityLog) bool { return true })
	return paginate(result, 0, limit), nil
}

func (m *mockActivityLogRepo) ListByEntity(_ context.Context, entityType, entityID string) ([]model.ActivityLog, error) {
	return m.sorted(func(l *model.ActivityLog) bool {
		return l.EntityType == entityType && l.EntityID == entityID
	}), nil
}

// byAction 按写入顺序返回指定动作的日志
func (m *mockActivityLogRepo) byAction(action string) []model.ActivityLog {
	var result []model.ActivityLog
	for _, l := range m.logs {
		if l.Action == action {
			result = append(result, l)
		}
	}
	return result
}

// ── 测试辅助 ──

// paginate limit <= 0 表示不限
func paginate[T any](s []T, offset, limit int) []T {
	if offset >= len(s) {
		return []T{}
	}
	s = s[offset:]
	if limit > 0 && limit < len(s) {
		s = s[:limit]
	}
	return s
}

// mockRepos 测试用仓储集合
type mockRepos struct {
	repo *repository.Repository

	user        *mockUserRepo
	floor       *mockFloorRepo
	room        *mockRoomRepo
	category    *mockCategoryRepo
	subCategory *mockSubCategoryRepo
	item        *mockItemRepo
	activityLog *mockActivityLogRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	floors := newMockFloorRepo()
	rooms := newMockRoomRepo(floors)
	categories := newMockCategoryRepo()
	m := &mockRepos{
		user:        newMockUserRepo(),
		floor:       floors,
		room:        rooms,
		category:    categories,
		subCategory: newMockSubCategoryRepo(),
		item:        newMockItemRepo(categories, floors, rooms),
		activityLog: newMockActivityLogRepo(),
	}
	repo := &repository.Repository{
		User:        m.user,
		Floor:       m.floor,
		Room:        m.room,
		Category:    m.category,
		SubCategory: m.subCategory,
		Item:        m.item,
		ActivityLog: m.activityLog,
	}
	m.repo = repo
	return repo, m
}

// seedCategory 直接写入一个分类
func (m *mockRepos) seedCategory(id, name, abbr string, counter int) *model.Category {
	cat := &model.Category{
		CategoryID:           id,
		Name:                 name,
		Abbreviation:         abbr,
		LastItemSerialNumber: counter,
		IsActive:             true,
	}
	m.category.categories[id] = cat
	return cat
}

// seedPlacement 直接写入一个楼层和其下的一个房间
func (m *mockRepos) seedPlacement(floorID, floorName, roomID, roomName string) (*model.Floor, *model.Room) {
	floor := &model.Floor{FloorID: floorID, Name: floorName, IsActive: true}
	room := &model.Room{RoomID: roomID, FloorID: floorID, Name: roomName, IsActive: true}
	m.floor.floors[floorID] = floor
	m.room.rooms[roomID] = room
	return floor, room
}
