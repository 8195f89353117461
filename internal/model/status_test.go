package model

import "testing"

func TestSyncRunStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to SyncRunStatus
		want     bool
	}{
		{SyncRunPending, SyncRunRunning, true},
		{SyncRunPending, SyncRunCancelled, true},
		{SyncRunPending, SyncRunCompleted, false}, // 不允许跳过 running
		{SyncRunPending, SyncRunError, false},
		{SyncRunRunning, SyncRunCompleted, true},
		{SyncRunRunning, SyncRunError, true},
		{SyncRunRunning, SyncRunCancelled, true},
		{SyncRunRunning, SyncRunPending, false},
		{SyncRunError, SyncRunRunning, true}, // 重试
		{SyncRunError, SyncRunCompleted, false},
		{SyncRunCompleted, SyncRunRunning, false},
		{SyncRunCancelled, SyncRunRunning, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.want {
			t.Errorf("%s → %s: 期望 %v，实际 %v", tc.from, tc.to, tc.want, got)
		}
	}
}

func TestSyncRunStatusTerminal(t *testing.T) {
	terminal := map[SyncRunStatus]bool{
		SyncRunPending:   false,
		SyncRunRunning:   false,
		SyncRunCompleted: true,
		SyncRunError:     true,
		SyncRunCancelled: true,
	}
	for status, want := range terminal {
		if status.Terminal() != want {
			t.Errorf("%s.Terminal() 期望 %v", status, want)
		}
	}
}

func TestProductPromptsAlwaysFourKeys(t *testing.T) {
	if len(AllPromptTypes) != 4 {
		t.Fatalf("槽位应固定四种，实际 %d", len(AllPromptTypes))
	}
	var prompts ProductPrompts
	for _, pt := range AllPromptTypes {
		if prompts.Get(pt) != "" {
			t.Errorf("零值槽位 %s 应为空", pt)
		}
	}
	prompts.Set(PromptTypePrice, "砍价话术")
	if prompts.Get(PromptTypePrice) != "砍价话术" {
		t.Error("Set 后 Get 不一致")
	}
	if prompts.Get(PromptTypeTech) != "" {
		t.Error("Set 不应影响其他槽位")
	}
}

func TestEnumValid(t *testing.T) {
	if !ProductStatusActive.Valid() || ProductStatus("deleted").Valid() {
		t.Error("ProductStatus.Valid 判定有误")
	}
	if !DeliveryTypeNetdisk.Valid() || DeliveryType("email").Valid() {
		t.Error("DeliveryType.Valid 判定有误")
	}
	if !PromptTypeClassify.Valid() || PromptType("greeting").Valid() {
		t.Error("PromptType.Valid 判定有误")
	}
}
