package registration

import (
	"strconv"
	"strings"
	"unicode"

	"event-registration/internal/apperr"
)

// ParseTeammates 去除非數字字元後轉為使用者 ID；數值 0 代表空位
func ParseTeammates(raw []string) ([]int, error) {
	ids := make([]int, 0, len(raw))
	for _, r := range raw {
		digits := strings.Map(func(c rune) rune {
			if c >= '0' && c <= '9' {
				return c
			}
			return -1
		}, r)
		if digits == "" {
			if strings.TrimFunc(r, unicode.IsSpace) == "" {
				return nil, apperr.New(apperr.Validation, "Teammate ID cannot be empty.")
			}
			return nil, apperr.New(apperr.Validation, "Invalid teammate ID: %q", r)
		}
		// users.id 為 INTEGER，超出 int32 的值不可能存在
		n, err := strconv.ParseInt(digits, 10, 32)
		if err != nil {
			return nil, apperr.New(apperr.Validation, "Invalid teammate ID: %q", r)
		}
		id := int(n)
		if id == 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// hasDuplicates 檢查所有成員 ID 是否重複
func hasDuplicates(ids []int) bool {
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}

// joinMembers 轉為 teams.members 格式，例如 "12,15"
func joinMembers(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
