package registration

// Policy 每個活動的隊伍人數規則
type Policy struct {
	MaxTeammates int
	SoloAllowed  bool
}

// PolicyFor 活動 1 可帶 1 位隊友；6 到 9 為團體賽需 1 到 3 位隊友；其餘僅限個人
func PolicyFor(eventID int) Policy {
	switch eventID {
	case 1:
		return Policy{MaxTeammates: 1, SoloAllowed: true}
	case 6, 7, 8, 9:
		return Policy{MaxTeammates: 3, SoloAllowed: false}
	default:
		return Policy{MaxTeammates: 0, SoloAllowed: true}
	}
}
