// Copyright 2016 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package restapi

import "github.com/gbartosz/sawtooth-core/protocol"

// StatusTrap maps a validator status code to the REST error it should raise.
// Handlers build a fresh trap list for each call and pass it to checkTraps;
// traps do not persist between requests.
type StatusTrap struct {
	Status protocol.Status
	Err    *Error
}

// baselineTraps apply to every reply whose type can carry the trapped status.
// Status codes are validator-defined per message kind, not uniform across
// reply types, so each trap is gated by the reply type's supported set.
var baselineTraps = []StatusTrap{
	{Status: protocol.StatusInternalError, Err: ErrValidatorFault},
	{Status: protocol.StatusNotReady, Err: ErrValidatorNotReady},
	{Status: protocol.StatusNoRoot, Err: ErrMissingHead},
}

// checkTraps evaluates the endpoint's traps in the order given, then the
// baseline traps. The first trap whose status matches wins. A nil return
// means the reply status raised no error and the payload can be trusted.
func checkTraps(replyType protocol.MessageType, status protocol.Status, traps []StatusTrap) error {
	for _, trap := range traps {
		if trap.Status == status {
			return trap.Err
		}
	}
	for _, trap := range baselineTraps {
		if !protocol.SupportsStatus(replyType, trap.Status) {
			continue
		}
		if trap.Status == status {
			return trap.Err
		}
	}
	return nil
}
