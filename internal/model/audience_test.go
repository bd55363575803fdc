package model

import (
	"errors"
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func testUser(id, companyID, role string) *User {
	return &User{UserID: id, CompanyID: companyID, Role: role}
}

// ═══════════════════════════════════════════════════════════
// NewAudience 构造校验
// ═══════════════════════════════════════════════════════════

func TestNewAudience_Valid(t *testing.T) {
	tests := []struct {
		name      string
		tag       string
		companyID *string
		userID    *string
		roles     []string
		wantTag   string
	}{
		{"全员", AudienceTagAll, nil, nil, nil, AudienceTagAll},
		{"企业", AudienceTagCompany, strPtr("c1"), nil, nil, AudienceTagCompany},
		{"用户", AudienceTagUser, nil, strPtr("u1"), nil, AudienceTagUser},
		{"角色", AudienceTagRole, nil, nil, []string{RoleRH}, AudienceTagRole},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aud, err := NewAudience(tt.tag, tt.companyID, tt.userID, tt.roles)
			if err != nil {
				t.Fatalf("构造失败: %v", err)
			}
			if aud.Tag() != tt.wantTag {
				t.Errorf("期望判别符 %s，实际 %s", tt.wantTag, aud.Tag())
			}
		})
	}
}

func TestNewAudience_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		tag       string
		companyID *string
		userID    *string
		roles     []string
		wantErr   error
	}{
		{"未知判别符", "broadcast", nil, nil, nil, ErrAudienceInvalid},
		{"企业缺载荷", AudienceTagCompany, nil, nil, nil, ErrAudienceCompanyRequired},
		{"企业空载荷", AudienceTagCompany, strPtr(""), nil, nil, ErrAudienceCompanyRequired},
		{"用户缺载荷", AudienceTagUser, nil, nil, nil, ErrAudienceUserRequired},
		{"角色空集合", AudienceTagRole, nil, nil, nil, ErrAudienceRolesRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAudience(tt.tag, tt.companyID, tt.userID, tt.roles)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("期望错误 %v，实际 %v", tt.wantErr, err)
			}
		})
	}
}

// ═══════════════════════════════════════════════════════════
// Matches 受众匹配
// ═══════════════════════════════════════════════════════════

func TestAudience_Matches(t *testing.T) {
	u := testUser("u1", "c1", RoleFuncionario)

	tests := []struct {
		name string
		aud  Audience
		want bool
	}{
		{"全员匹配任何人", AudienceAll{}, true},
		{"本企业命中", AudienceCompany{CompanyID: "c1"}, true},
		{"其他企业不命中", AudienceCompany{CompanyID: "c2"}, false},
		{"本人命中", AudienceUser{UserID: "u1"}, true},
		{"他人不命中", AudienceUser{UserID: "u2"}, false},
		{"持有角色命中", AudienceRoles{Roles: StringArray{RoleRH, RoleFuncionario}}, true},
		{"不持有角色不命中", AudienceRoles{Roles: StringArray{RoleRH, RoleAdministrador}}, false},
		{"空角色集不命中", AudienceRoles{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.aud.Matches(u); got != tt.want {
				t.Errorf("期望 %v，实际 %v", tt.want, got)
			}
		})
	}
}

func TestAudience_Matches_NilUser(t *testing.T) {
	if (AudienceCompany{CompanyID: "c1"}).Matches(nil) {
		t.Error("nil 用户不应命中企业受众")
	}
	if (AudienceRoles{Roles: StringArray{RoleRH}}).Matches(nil) {
		t.Error("nil 用户不应命中角色受众")
	}
}

// ═══════════════════════════════════════════════════════════
// 扁平列 ↔ 受众 互转
// ═══════════════════════════════════════════════════════════

func TestNotification_SetAudience_ClearsStalePayload(t *testing.T) {
	n := &Notification{}
	n.SetAudience(AudienceCompany{CompanyID: "c1"})
	n.SetAudience(AudienceRoles{Roles: StringArray{RoleRH}})

	if n.TargetAudience != AudienceTagRole {
		t.Errorf("期望判别符 role，实际 %s", n.TargetAudience)
	}
	if n.TargetCompanyID != nil {
		t.Error("切换受众后旧的企业载荷应被清空")
	}
	if len(n.TargetRoles) != 1 || n.TargetRoles[0] != RoleRH {
		t.Errorf("角色载荷不符: %v", n.TargetRoles)
	}
}

func TestNotification_Audience_Roundtrip(t *testing.T) {
	for _, aud := range []Audience{
		AudienceAll{},
		AudienceCompany{CompanyID: "c1"},
		AudienceUser{UserID: "u1"},
		AudienceRoles{Roles: StringArray{RoleRH, RoleFinanceiro}},
	} {
		n := &Notification{}
		n.SetAudience(aud)
		got := n.Audience()
		if got.Tag() != aud.Tag() {
			t.Errorf("判别符往返不一致: 存 %s 取 %s", aud.Tag(), got.Tag())
		}
	}
}

func TestNotification_Audience_DirtyDataInvisible(t *testing.T) {
	// 判别符为 company 但载荷列为空的脏数据，兜底为对所有人不可见
	n := &Notification{TargetAudience: AudienceTagCompany}
	aud := n.Audience()
	if aud.Matches(testUser("u1", "c1", RoleAdministrador)) {
		t.Error("脏数据不应对任何用户可见")
	}
}

// ═══════════════════════════════════════════════════════════
// VisibleTo 时间窗口
// ═══════════════════════════════════════════════════════════

func TestNotification_VisibleTo(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	u := testUser("u1", "c1", RoleFuncionario)

	base := func() *Notification {
		n := &Notification{IsActive: true}
		n.SetAudience(AudienceAll{})
		return n
	}

	t.Run("激活且无窗口限制可见", func(t *testing.T) {
		if !base().VisibleTo(u, now) {
			t.Error("应可见")
		}
	})

	t.Run("停用不可见", func(t *testing.T) {
		n := base()
		n.IsActive = false
		if n.VisibleTo(u, now) {
			t.Error("停用通知不应可见")
		}
	})

	t.Run("过期不可见", func(t *testing.T) {
		n := base()
		n.ExpiresAt = timePtr(now.Add(-time.Minute))
		if n.VisibleTo(u, now) {
			t.Error("过期通知不应可见")
		}
	})

	t.Run("过期时刻即边界不可见", func(t *testing.T) {
		n := base()
		n.ExpiresAt = timePtr(now)
		if n.VisibleTo(u, now) {
			t.Error("expires_at == now 应视为已过期")
		}
	})

	t.Run("未到调度时刻不可见", func(t *testing.T) {
		n := base()
		n.ScheduleFor = timePtr(now.Add(time.Hour))
		if n.VisibleTo(u, now) {
			t.Error("未到调度时刻不应可见")
		}
	})

	t.Run("调度时刻即边界可见", func(t *testing.T) {
		n := base()
		n.ScheduleFor = timePtr(now)
		if !n.VisibleTo(u, now) {
			t.Error("schedule_for == now 应可见")
		}
	})

	t.Run("受众不匹配不可见", func(t *testing.T) {
		n := base()
		n.SetAudience(AudienceCompany{CompanyID: "c2"})
		if n.VisibleTo(u, now) {
			t.Error("受众不匹配不应可见")
		}
	})
}

// ═══════════════════════════════════════════════════════════
// 类型 / 优先级 词汇表
// ═══════════════════════════════════════════════════════════

func TestIsValidNotificationType(t *testing.T) {
	for _, typ := range ValidNotificationTypes {
		if !IsValidNotificationType(typ) {
			t.Errorf("%s 应为合法类型", typ)
		}
	}
	if IsValidNotificationType("broadcast") {
		t.Error("broadcast 不应为合法类型")
	}
}

func TestPriorityRank(t *testing.T) {
	if PriorityRank(PriorityUrgent) <= PriorityRank(PriorityHigh) {
		t.Error("urgent 应高于 high")
	}
	if PriorityRank(PriorityHigh) <= PriorityRank(PriorityNormal) {
		t.Error("high 应高于 normal")
	}
	if PriorityRank(PriorityNormal) <= PriorityRank(PriorityLow) {
		t.Error("normal 应高于 low")
	}
	if PriorityRank("desconhecido") != PriorityRank(PriorityLow) {
		t.Error("未知优先级应按最低处理")
	}
}
