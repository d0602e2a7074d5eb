// Package device holds the Device aggregate and its registry.
//
// A device is a piece of hardware installed in a room. Sensors and
// actuators hang off it by DeviceID. A device starts ACTIVE and can be
// deactivated exactly once; there is no way back.
//
// # Key Types
//
//   - Device: the aggregate, identified by a DeviceID
//   - Repository: persistence contract, implemented by SQLiteRepository
//   - Registry: a thread-safe cache in front of a Repository
//
// # Usage
//
//	repo := device.NewSQLiteRepository(db.DB)
//	reg := device.NewRegistry(repo)
//	if err := reg.RefreshCache(ctx); err != nil {
//	    return err
//	}
//
//	d := device.Create(model, roomID)
//	if d == nil {
//	    return errInvalidInput
//	}
//	err := reg.CreateDevice(ctx, d)
package device
