package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// CatalogQuery 电影/剧集的查询条件，零值字段不参与过滤
type CatalogQuery struct {
	Text          string // 标题或简介包含（忽略大小写）
	TextPeople    bool   // Text 按词拆分，每个词同时匹配导演/主创
	GenreName     string // 任一类型名包含（忽略大小写）
	GenreID       uint
	GenreIDs      []uint // 与其中任一类型相同
	Year          int    // 上映/首播年份
	ReleasedSince *time.Time
	Rating        string
	Status        string // 仅剧集
	IsFeatured    *bool
	IsTrending    *bool
	ExcludeIDs    []uint
	Ordering      string // 白名单字段，"-" 前缀表示倒序
}

// catalogTable 电影表与剧集表的差异
type catalogTable struct {
	dateColumn   string
	peopleColumn string
	joinTable    string
	joinColumn   string
	orderings    map[string]string
	defaultOrder string
}

var movieTable = catalogTable{
	dateColumn:   "release_date",
	peopleColumn: "director",
	joinTable:    "movie_genres",
	joinColumn:   "movie_id",
	orderings: map[string]string{
		"title":        "title",
		"release_date": "release_date",
		"duration":     "duration",
	},
	defaultOrder: "release_date DESC",
}

var tvShowTable = catalogTable{
	dateColumn:   "first_air_date",
	peopleColumn: "creator",
	joinTable:    "tv_show_genres",
	joinColumn:   "tv_show_id",
	orderings: map[string]string{
		"title":             "title",
		"first_air_date":    "first_air_date",
		"number_of_seasons": "number_of_seasons",
	},
	defaultOrder: "first_air_date DESC",
}

// filter 追加过滤条件
func (t catalogTable) filter(q CatalogQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Text != "" {
			if q.TextPeople {
				// 按空白拆词，每个词都要命中标题、简介或导演/主创之一
				for _, term := range strings.Fields(q.Text) {
					like := containsPattern(term)
					db = db.Where("(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\' OR LOWER("+t.peopleColumn+") LIKE ? ESCAPE '\\')", like, like, like)
				}
			} else {
				like := containsPattern(q.Text)
				db = db.Where("(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')", like, like)
			}
		}
		if q.GenreName != "" {
			db = db.Where("id IN (SELECT j."+t.joinColumn+" FROM "+t.joinTable+" j JOIN genres g ON g.id = j.genre_id WHERE LOWER(g.name) LIKE ? ESCAPE '\\')", containsPattern(q.GenreName))
		}
		if q.GenreID != 0 {
			db = db.Where("id IN (SELECT "+t.joinColumn+" FROM "+t.joinTable+" WHERE genre_id = ?)", q.GenreID)
		}
		if len(q.GenreIDs) > 0 {
			db = db.Where("id IN (SELECT "+t.joinColumn+" FROM "+t.joinTable+" WHERE genre_id IN ?)", q.GenreIDs)
		}
		if q.Year != 0 {
			start := time.Date(q.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
			db = db.Where(t.dateColumn+" >= ? AND "+t.dateColumn+" < ?", start, start.AddDate(1, 0, 0))
		}
		if q.ReleasedSince != nil {
			db = db.Where(t.dateColumn+" >= ?", q.ReleasedSince.UTC())
		}
		if q.Rating != "" {
			db = db.Where("rating = ?", q.Rating)
		}
		if q.Status != "" {
			db = db.Where("status = ?", q.Status)
		}
		if q.IsFeatured != nil {
			db = db.Where("is_featured = ?", *q.IsFeatured)
		}
		if q.IsTrending != nil {
			db = db.Where("is_trending = ?", *q.IsTrending)
		}
		if len(q.ExcludeIDs) > 0 {
			db = db.Where("id NOT IN ?", q.ExcludeIDs)
		}
		return db
	}
}

// order 排序子句，未知字段使用默认排序
func (t catalogTable) order(ordering string) string {
	desc := strings.HasPrefix(ordering, "-")
	if column, ok := t.orderings[strings.TrimPrefix(ordering, "-")]; ok {
		if desc {
			return column + " DESC, id DESC"
		}
		return column + " ASC, id ASC"
	}
	return t.defaultOrder + ", id DESC"
}

// containsPattern 构造忽略大小写的包含匹配模式
func containsPattern(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return "%" + s + "%"
}
