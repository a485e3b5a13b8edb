package service

import (
	"context"
	"encoding/json"
	"exam_studio_backend/internal/config"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const dictionaryCacheTTL = 10 * time.Minute

// DictionaryService 按语言标签提供界面词典。
// 词典文件为 locales/<lang>.json 的嵌套结构，未知语言回退到默认语言。
type DictionaryService struct {
	Cfg   *config.LocaleConfig
	Redis *redis.Client

	mu    sync.RWMutex
	cache map[string]map[string]interface{}
}

func NewDictionaryService(cfg *config.LocaleConfig, rdb *redis.Client) *DictionaryService {
	return &DictionaryService{
		Cfg:   cfg,
		Redis: rdb,
		cache: make(map[string]map[string]interface{}),
	}
}

// SupportedLocales 扫描词典目录得到可用语言列表
func (s *DictionaryService) SupportedLocales() []string {
	entries, err := os.ReadDir(s.Cfg.Path)
	if err != nil {
		return []string{s.Cfg.Default}
	}

	var locales []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".json" {
			locales = append(locales, e.Name()[:len(e.Name())-len(ext)])
		}
	}
	if len(locales) == 0 {
		return []string{s.Cfg.Default}
	}
	return locales
}

func (s *DictionaryService) load(lang string) (map[string]interface{}, error) {
	s.mu.RLock()
	if d, ok := s.cache[lang]; ok {
		s.mu.RUnlock()
		return d, nil
	}
	s.mu.RUnlock()

	data, err := os.ReadFile(filepath.Join(s.Cfg.Path, lang+".json"))
	if err != nil {
		return nil, err
	}

	var dict map[string]interface{}
	if err := json.Unmarshal(data, &dict); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[lang] = dict
	s.mu.Unlock()
	return dict, nil
}

// Lookup 返回指定语言的词典，未知语言回退默认语言。
// Redis 里缓存序列化结果，多实例部署时减少磁盘读取。
func (s *DictionaryService) Lookup(ctx context.Context, lang string) (map[string]interface{}, error) {
	key := fmt.Sprintf("dictionary:%s", lang)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var dict map[string]interface{}
			if jsonErr := json.Unmarshal([]byte(cached), &dict); jsonErr == nil {
				return dict, nil
			}
		}
	}

	dict, err := s.load(lang)
	if err != nil {
		if lang == s.Cfg.Default {
			return nil, err
		}
		return s.Lookup(ctx, s.Cfg.Default)
	}

	if s.Redis != nil {
		if payload, jsonErr := json.Marshal(dict); jsonErr == nil {
			s.Redis.Set(ctx, key, payload, dictionaryCacheTTL)
		}
	}

	return dict, nil
}

// Get 按点分路径取词条，缺失时返回给定的兜底文案
func Get(dict map[string]interface{}, path []string, fallback string) string {
	cur := dict
	for i, seg := range path {
		v, ok := cur[seg]
		if !ok {
			return fallback
		}
		if i == len(path)-1 {
			if s, ok := v.(string); ok {
				return s
			}
			return fallback
		}
		next, ok := v.(map[string]interface{})
		if !ok {
			return fallback
		}
		cur = next
	}
	return fallback
}
