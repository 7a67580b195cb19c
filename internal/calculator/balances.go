package calculator

import (
	"sort"

	"github.com/0PeterAdel/Money-Management/internal/models"
)

// epsilon is the float noise threshold below which a net position counts as
// zero.
const epsilon = 0.01

// position is one user's net standing while the planner consumes it.
type position struct {
	userID string
	net    float64
}

// PlanTransfers turns net positions into a suggested transfer list using
// greedy debtor/creditor pairing.
//
// Algorithm:
//   - debtors (net < -epsilon) sorted ascending: most negative first
//   - creditors (net > epsilon) sorted descending: largest first
//   - repeatedly transfer round(min(|debtor|, creditor), 2) between the two
//     heads, advancing past any party whose remainder drops below epsilon
//
// The result zeroes all positions but makes no claim of a globally minimal
// transaction count. Ties are broken by user ID so output order is stable.
func PlanTransfers(net map[string]float64) []models.Transfer {
	var debtors, creditors []position
	for userID, balance := range net {
		switch {
		case balance < -epsilon:
			debtors = append(debtors, position{userID, balance})
		case balance > epsilon:
			creditors = append(creditors, position{userID, balance})
		}
	}

	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].net != debtors[j].net {
			return debtors[i].net < debtors[j].net
		}
		return debtors[i].userID < debtors[j].userID
	})
	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].net != creditors[j].net {
			return creditors[i].net > creditors[j].net
		}
		return creditors[i].userID < creditors[j].userID
	})

	var transfers []models.Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := Round2(-debtor.net)
		if creditor.net < -debtor.net {
			amount = Round2(creditor.net)
		}

		if amount > 0 {
			transfers = append(transfers, models.Transfer{
				DebtorID:   debtor.userID,
				CreditorID: creditor.userID,
				Amount:     amount,
			})
		}

		debtor.net += amount
		creditor.net -= amount

		if -debtor.net < epsilon {
			i++
		}
		if creditor.net < epsilon {
			j++
		}
	}

	return transfers
}
