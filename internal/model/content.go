package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// ContentKind 内容类型
type ContentKind string

const (
	KindMovie  ContentKind = "movie"
	KindTVShow ContentKind = "tv_show"
)

// ParseContentKind 解析内容类型
func ParseContentKind(s string) (ContentKind, bool) {
	switch ContentKind(s) {
	case KindMovie, KindTVShow:
		return ContentKind(s), true
	}
	return "", false
}

// ContentRef 指向一部电影或一部剧集
type ContentRef struct {
	Kind ContentKind
	ID   uint
}

// MovieRef 电影引用
func MovieRef(id uint) ContentRef {
	return ContentRef{Kind: KindMovie, ID: id}
}

// TVShowRef 剧集引用
func TVShowRef(id uint) ContentRef {
	return ContentRef{Kind: KindTVShow, ID: id}
}

func (r ContentRef) String() string {
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

// ContentRating 分级
const (
	RatingG    = "G"
	RatingPG   = "PG"
	RatingPG13 = "PG-13"
	RatingR    = "R"
	RatingNC17 = "NC-17"
)

// ShowStatus 剧集状态
const (
	ShowOngoing   = "ongoing"
	ShowEnded     = "ended"
	ShowCancelled = "cancelled"
)

// Date 只包含日期的时间，JSON 中格式为 2006-01-02
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

// NewDate 创建日期（UTC 零点）
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf 截取时间的日期部分
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate 解析 2006-01-02 格式日期
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value 实现 driver.Valuer
func (d Date) Value() (driver.Value, error) {
	return d.Time.UTC(), nil
}

// Scan 实现 sql.Scanner
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DateOf(v.UTC())
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	case nil:
		*d = Date{}
		return nil
	}
	return fmt.Errorf("无法将 %T 转换为日期", src)
}

func (d *Date) scanString(s string) error {
	if len(s) < len(dateLayout) {
		return fmt.Errorf("日期格式错误: %q", s)
	}
	parsed, err := ParseDate(s[:len(dateLayout)])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDataType 数据库列类型
func (Date) GormDataType() string {
	return "date"
}

// CastList 演员表，PostgreSQL 中存为 text[]
type CastList []string

// Value 实现 driver.Valuer
func (c CastList) Value() (driver.Value, error) {
	if c == nil {
		return pq.StringArray{}.Value()
	}
	return pq.StringArray(c).Value()
}

// Scan 实现 sql.Scanner
func (c *CastList) Scan(src any) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*c = CastList(arr)
	return nil
}

// GormDBDataType 按方言选择列类型
func (CastList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}
