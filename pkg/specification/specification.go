// Package specification 把"字段名 → 可选值列表"形式的搜索条件组合成一个gorm查询条件
//
// 组合规则：
//   - 不同字段之间是AND：记录必须满足每个提供了值的字段
//   - 同一字段的多个值之间是OR：命中任意一个即可
//   - 未提供或全为空白的字段不产生约束，空条件即全量查询
//
// 每个字段由一个Provider负责生成条件，Provider在启动时注册到Manager。
// 新增可搜索字段只需注册新的Provider，组合逻辑不需要改动。
//
// 使用示例：
//
//	manager, _ := specification.NewManager(
//	    specification.In("title", "books.title"),
//	    specification.In("author", "books.author"),
//	)
//	builder := specification.NewBuilder(manager)
//	spec, err := builder.Build(map[string][]string{"title": {"Dune"}})
//	db.Model(&BookModel{}).Scopes(spec).Find(&books)
package specification

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Specification 查询条件，作为gorm Scope在同一条SQL中生效
type Specification func(db *gorm.DB) *gorm.DB

// Provider 单个字段的条件提供者（无状态）
type Provider interface {
	// Key 字段名（精确匹配）
	Key() string
	// Specification 根据非空的值列表生成条件
	Specification(values []string) Specification
}

// ErrProviderNotFound 搜索字段没有注册Provider
// 属于部署/编程错误，不是用户输入错误
var ErrProviderNotFound = apperrors.New(apperrors.ErrCodeConfiguration, "搜索字段未注册条件提供者")

// =========================================
// Provider实现
// =========================================

type providerFunc struct {
	key string
	fn  func(values []string) Specification
}

func (p providerFunc) Key() string { return p.key }

func (p providerFunc) Specification(values []string) Specification { return p.fn(values) }

// NewProvider 用函数构造Provider
func NewProvider(key string, fn func(values []string) Specification) Provider {
	return providerFunc{key: key, fn: fn}
}

// In 列值等于任意一个给定值（column IN ?）
func In(key, column string) Provider {
	return NewProvider(key, func(values []string) Specification {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where(column+" IN ?", values)
		}
	})
}

// =========================================
// Manager：字段名 → Provider 的静态表
// =========================================

// Manager Provider注册表，创建后只读，可并发使用
type Manager struct {
	providers map[string]Provider
}

// NewManager 注册Provider，key为空或重复时返回错误
func NewManager(providers ...Provider) (*Manager, error) {
	m := &Manager{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		key := p.Key()
		if key == "" {
			return nil, fmt.Errorf("条件提供者的字段名不能为空")
		}
		if _, exists := m.providers[key]; exists {
			return nil, fmt.Errorf("字段%q重复注册条件提供者", key)
		}
		m.providers[key] = p
	}
	return m, nil
}

// Provider 按字段名查找Provider
func (m *Manager) Provider(key string) (Provider, error) {
	p, ok := m.providers[key]
	if !ok {
		return nil, apperrors.WrapWithCode(
			fmt.Errorf("no specification provider for key %q", key),
			ErrProviderNotFound.Code,
			ErrProviderNotFound.Message,
		)
	}
	return p, nil
}

// Require 校验指定字段都已注册，启动时调用以便尽早失败
func (m *Manager) Require(keys ...string) error {
	for _, key := range keys {
		if _, err := m.Provider(key); err != nil {
			return err
		}
	}
	return nil
}

// =========================================
// Builder：把搜索条件组合成一个Specification
// =========================================

// Builder 条件组合器
type Builder struct {
	manager *Manager
}

// NewBuilder 创建条件组合器
func NewBuilder(manager *Manager) *Builder {
	return &Builder{manager: manager}
}

// Build 组合搜索条件
// 字段按名称排序后依次应用，保证生成的SQL稳定
func (b *Builder) Build(filters map[string][]string) (Specification, error) {
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	specs := make([]Specification, 0, len(keys))
	for _, key := range keys {
		values := compact(filters[key])
		if len(values) == 0 {
			continue
		}
		p, err := b.manager.Provider(key)
		if err != nil {
			return nil, err
		}
		specs = append(specs, p.Specification(values))
	}
	return And(specs...), nil
}

// And 依次应用所有条件（gorm链式Where即AND）
func And(specs ...Specification) Specification {
	return func(db *gorm.DB) *gorm.DB {
		for _, spec := range specs {
			db = spec(db)
		}
		return db
	}
}

// compact 去掉空白值，去除首尾空格，保持原顺序去重
func compact(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
