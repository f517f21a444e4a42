package queries

import (
	"database/sql"
	"encoding/json"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"

	"github.com/google/uuid"
)

// orderSnapshotColumns is the select list matching scanOrderSnapshots.
const orderSnapshotColumns = `
	id,
	order_number,
	shopper_id,
	status,
	items,
	original_total,
	total,
	delivery_fee,
	shopper_commission,
	address_street,
	address_city,
	address_zip_code,
	address_instructions,
	address_contact_phone,
	revision,
	timeline,
	version`

// scanOrderSnapshots reads order rows into wire snapshots, decoding the JSONB
// item, timeline, and revision documents stored alongside the scalar columns.
func scanOrderSnapshots(rows *sql.Rows) ([]wire.OrderSnapshot, error) {
	snapshots := make([]wire.OrderSnapshot, 0)

	for rows.Next() {
		var (
			id        uuid.UUID
			shopperID *uuid.UUID
			status    string
			items     []byte
			revision  []byte
			timeline  []byte
			snapshot  wire.OrderSnapshot
		)

		err := rows.Scan(
			&id,
			&snapshot.OrderNumber,
			&shopperID,
			&status,
			&items,
			&snapshot.OriginalTotal,
			&snapshot.Total,
			&snapshot.DeliveryFee,
			&snapshot.ShopperCommission,
			&snapshot.Address.Street,
			&snapshot.Address.City,
			&snapshot.Address.ZipCode,
			&snapshot.Address.Instructions,
			&snapshot.Address.ContactPhone,
			&revision,
			&timeline,
			&snapshot.Version,
		)
		if err != nil {
			return nil, err
		}

		snapshot.ID = id.String()
		snapshot.Status = status
		snapshot.DisplayStatus = order.Status(status).DisplayName()
		if shopperID != nil {
			snapshot.ShopperID = shopperID.String()
		}

		if err = json.Unmarshal(items, &snapshot.Items); err != nil {
			return nil, err
		}
		if err = json.Unmarshal(timeline, &snapshot.Timeline); err != nil {
			return nil, err
		}
		if len(revision) > 0 {
			var revisionSnapshot wire.RevisionSnapshot
			if err = json.Unmarshal(revision, &revisionSnapshot); err != nil {
				return nil, err
			}
			snapshot.Revision = &revisionSnapshot
		}

		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return snapshots, nil
}
