// services/connections.go
package services

import (
	"sort"

	"boulder-session-system/models"
	"boulder-session-system/utils"
)

type sessionKey struct {
	date    string
	gymName string
}

type pairKey struct {
	a, b string
}

// BuildEdges derives "climbed together" edges from session logs. Logs are
// grouped by (date, gym); every group with at least two distinct users adds
// one shared session to each pair in it. The result does not depend on input
// order: edges are sorted by count desc, then by pair.
func BuildEdges(logs []models.ClimbingLog) []models.Edge {
	groups := make(map[sessionKey]map[string]struct{})
	for _, l := range logs {
		if l.UserName == "" {
			continue
		}
		k := sessionKey{date: utils.DateOnly(l.Date), gymName: l.GymName}
		if groups[k] == nil {
			groups[k] = make(map[string]struct{})
		}
		groups[k][l.UserName] = struct{}{}
	}

	edges := make(map[pairKey]*models.Edge)
	for k, members := range groups {
		if len(members) < 2 {
			continue
		}
		users := make([]string, 0, len(members))
		for u := range members {
			users = append(users, u)
		}
		sort.Strings(users)

		for i := 0; i < len(users); i++ {
			for j := i + 1; j < len(users); j++ {
				pk := pairKey{a: users[i], b: users[j]}
				e, ok := edges[pk]
				if !ok {
					e = &models.Edge{UserA: pk.a, UserB: pk.b}
					edges[pk] = e
				}
				e.Count++
				e.Sessions = append(e.Sessions, models.EdgeSession{Date: k.date, GymName: k.gymName})
			}
		}
	}

	out := make([]models.Edge, 0, len(edges))
	for _, e := range edges {
		sort.Slice(e.Sessions, func(i, j int) bool {
			if e.Sessions[i].Date != e.Sessions[j].Date {
				return e.Sessions[i].Date > e.Sessions[j].Date
			}
			return e.Sessions[i].GymName < e.Sessions[j].GymName
		})
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		if out[i].UserA != out[j].UserA {
			return out[i].UserA < out[j].UserA
		}
		return out[i].UserB < out[j].UserB
	})
	return out
}

// UserRanking lists user's partners by shared-session count, highest first.
func UserRanking(edges []models.Edge, user string) []models.RankedPartner {
	out := []models.RankedPartner{}
	for _, e := range edges {
		if !e.Touches(user) {
			continue
		}
		out = append(out, models.RankedPartner{
			Partner:  e.Other(user),
			Count:    e.Count,
			Sessions: e.Sessions,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// FindEdge returns the edge between two users, if any.
func FindEdge(edges []models.Edge, a, b string) *models.Edge {
	if a > b {
		a, b = b, a
	}
	for i := range edges {
		if edges[i].UserA == a && edges[i].UserB == b {
			return &edges[i]
		}
	}
	return nil
}

// NextPlan is the user's earliest Plan dated on or after asOfDate.
func NextPlan(user, asOfDate string, logs []models.ClimbingLog) *models.ClimbingLog {
	var next *models.ClimbingLog
	for i := range logs {
		l := &logs[i]
		if !l.IsPlan() || l.UserName != user || utils.DateOnly(l.Date) < asOfDate {
			continue
		}
		if next == nil || l.Date < next.Date {
			next = l
		}
	}
	if next == nil {
		return nil
	}
	n := *next
	return &n
}

// TopGym is the gym user visited most (Actual logs only). Ties go to the gym
// visited most recently, then by name.
func TopGym(user string, logs []models.ClimbingLog) *models.GymVisitCount {
	counts := make(map[string]int)
	lastSeen := make(map[string]string)
	for _, l := range logs {
		if !l.IsActual() || l.UserName != user {
			continue
		}
		counts[l.GymName]++
		if d := utils.DateOnly(l.Date); d > lastSeen[l.GymName] {
			lastSeen[l.GymName] = d
		}
	}
	return pickTopGym(counts, lastSeen)
}

// JointTopGym is the gym appearing most often among an edge's shared sessions.
func JointTopGym(edge *models.Edge) *models.GymVisitCount {
	if edge == nil {
		return nil
	}
	counts := make(map[string]int)
	lastSeen := make(map[string]string)
	for _, s := range edge.Sessions {
		counts[s.GymName]++
		if s.Date > lastSeen[s.GymName] {
			lastSeen[s.GymName] = s.Date
		}
	}
	return pickTopGym(counts, lastSeen)
}

func pickTopGym(counts map[string]int, lastSeen map[string]string) *models.GymVisitCount {
	var best *models.GymVisitCount
	for gym, n := range counts {
		if best == nil ||
			n > best.Count ||
			(n == best.Count && lastSeen[gym] > lastSeen[best.GymName]) ||
			(n == best.Count && lastSeen[gym] == lastSeen[best.GymName] && gym < best.GymName) {
			best = &models.GymVisitCount{GymName: gym, Count: n}
		}
	}
	return best
}

// BuildPartnerPanel summarizes me's shared history with partner.
func BuildPartnerPanel(me, partner, asOfDate string, logs []models.ClimbingLog, edges []models.Edge) models.PartnerPanel {
	panel := models.PartnerPanel{
		Me:            me,
		Partner:       partner,
		NextPlan:      NextPlan(partner, asOfDate, logs),
		MyTopGym:      TopGym(me, logs),
		PartnerTopGym: TopGym(partner, logs),
	}
	if edge := FindEdge(edges, me, partner); edge != nil {
		panel.SharedCount = edge.Count
		if len(edge.Sessions) > 0 {
			last := edge.Sessions[0]
			panel.LastShared = &last
		}
		panel.JointTopGym = JointTopGym(edge)
	}
	return panel
}
