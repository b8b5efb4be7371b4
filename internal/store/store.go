package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// ErrMalformedID 表数据损坏：id 列无法解析为整数。
// 只有备份文件被手工改坏才会出现，不可静默修复。
var ErrMalformedID = errors.New("表数据损坏: id 不是整数")

// Record 一行记录，字段名到文本值的映射
type Record map[string]string

// Table 一张表。Name 决定落盘文件名（<Name>.csv），Fields 决定列顺序。
type Table struct {
	Name   string
	Fields []string
}

// Store 基于 CSV 文件的表存储。
// 所有写操作通过 Mutate 串行化；保存整表重写并通过临时文件+重命名落盘，
// 读者要么看到旧版本要么看到新版本，不会读到写了一半的表。
type Store struct {
	dir string
	mu  sync.Mutex
}

// Open 打开数据目录，不存在时创建
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Mutate 在全局互斥锁内执行一次读-改-写。所有表共用一把锁。
func (s *Store) Mutate(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

func (s *Store) path(t Table) string {
	return filepath.Join(s.dir, t.Name+".csv")
}

// Load 读取整表。文件不存在返回空表，不算错误。
func (s *Store) Load(t Table) ([]Record, error) {
	f, err := os.Open(s.path(t))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("读取表 %s 失败: %w", t.Name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("解析表 %s 失败: %w", t.Name, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, name := range header {
			if i < len(row) {
				rec[name] = row[i]
			} else {
				rec[name] = ""
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Save 整表重写。记录中缺失的字段写空值，多余的键忽略。
// 先写同目录临时文件再原子重命名，读者不会观察到半成品。
func (s *Store) Save(t Table, records []Record) error {
	tmp, err := os.CreateTemp(s.dir, t.Name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("创建临时文件失败: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Fields); err != nil {
		tmp.Close()
		return fmt.Errorf("写入表 %s 失败: %w", t.Name, err)
	}
	row := make([]string, len(t.Fields))
	for _, rec := range records {
		for i, name := range t.Fields {
			row[i] = rec[name]
		}
		if err := w.Write(row); err != nil {
			tmp.Close()
			return fmt.Errorf("写入表 %s 失败: %w", t.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("写入表 %s 失败: %w", t.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("写入表 %s 失败: %w", t.Name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(t)); err != nil {
		return fmt.Errorf("保存表 %s 失败: %w", t.Name, err)
	}
	return nil
}

// NextID 扫描现有 id 取最大值加一，空表返回 1
func NextID(records []Record) (int, error) {
	max := 0
	for _, rec := range records {
		id, err := strconv.Atoi(rec["id"])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedID, rec["id"])
		}
		if id > max {
			max = id
		}
	}
	return max + 1, nil
}
