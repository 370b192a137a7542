package rpc

const blockSummaryJSON = `{
  "baseFeePerGas": "0x7",
  "difficulty": "0x0",
  "extraData": "0xd883010d0e846765746888676f312e32312e36856c696e7578",
  "gasLimit": "0x1c9c380",
  "gasUsed": "0x5208",
  "hash": "0x67a384763b3b986363694c48b710c4a61d92e684ff65bc39ce3f843cc0ea35f2",
  "logsBloom": "0x00000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000",
  "miner": "0x0000000000000000000000000000000000000000",
  "mixHash": "0x0000000000000000000000000000000000000000000000000000000000000000",
  "nonce": "0x0000000000000000",
  "number": "0x807b3c",
  "parentHash": "0x1b2f5e09d1c4a1b1a9e7e1c0c3f26c6e2bd77f3b5f4e6c7d8e9f0a1b2c3d4e5f",
  "receiptsRoot": "0x056b23fbba480696b65fe5a59b8f2148a1299103c4f57df839233af2cf4ca2d2",
  "sha3Uncles": "0x1dcc4de8dec75d7aab85b567b6ccd41ad312451b948a7413f0a142fd40d49347",
  "size": "0x2bc",
  "stateRoot": "0xd7f8974fb5ac78d9ac099b9ad5018bedc2ce0a72dad1827a1709da30580f0544",
  "timestamp": "0x65a1b2c3",
  "totalDifficulty": "0x1",
  "transactions": [
    "0x05ac269811b4ff3faa7f64466db468adbefbf5231b5d4946b9aa82bbf293ff52",
    "0xaa00000000000000000000000000000000000000000000000000000000000001",
    "0xbb00000000000000000000000000000000000000000000000000000000000002"
  ],
  "transactionsRoot": "0x56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421",
  "uncles": [
    "0xcc00000000000000000000000000000000000000000000000000000000000003",
    "0xdd00000000000000000000000000000000000000000000000000000000000004"
  ]
}`

const transactionJSON = `{
  "blockHash": "0x67a384763b3b986363694c48b710c4a61d92e684ff65bc39ce3f843cc0ea35f2",
  "blockNumber": "0x807b3c",
  "from": "0xdd0446989c851a76bf03e10a04eae1488e58a0d9",
  "gas": "0x5208",
  "gasPrice": "0x3b9aca00",
  "maxFeePerGas": "0x77359400",
  "maxPriorityFeePerGas": "0x3b9aca00",
  "hash": "0x05ac269811b4ff3faa7f64466db468adbefbf5231b5d4946b9aa82bbf293ff52",
  "input": "0x",
  "nonce": "0x2a",
  "to": "0x6e226c9bab32be96ff2bc7da14a2bdf1f026045f",
  "transactionIndex": "0x0",
  "value": "0xde0b6b3a7640000",
  "type": "0x2",
  "chainId": "0x1cf",
  "v": "0x1",
  "r": "0x9a3e2c1b0f7d6e5a4b3c2d1e0f9a8b7c6d5e4f3a2b1c0d9e8f7a6b5c4d3e2f10",
  "s": "0x1f2e3d4c5b6a79881726354453627180f9e8d7c6b5a49382716051f4e3d2c1b0"
}`

const pendingTransactionJSON = `{
  "blockHash": null,
  "blockNumber": null,
  "from": "0xdd0446989c851a76bf03e10a04eae1488e58a0d9",
  "gas": "0x5208",
  "gasPrice": "0x3b9aca00",
  "hash": "0xee00000000000000000000000000000000000000000000000000000000000005",
  "input": "0x",
  "nonce": "0x2b",
  "to": null,
  "transactionIndex": null,
  "value": "0x0",
  "type": "0x0",
  "v": "0x25",
  "r": "0x1",
  "s": "0x2"
}`

const receiptJSON = `{
  "blockHash": "0x67a384763b3b986363694c48b710c4a61d92e684ff65bc39ce3f843cc0ea35f2",
  "blockNumber": "0x807b3c",
  "contractAddress": null,
  "cumulativeGasUsed": "0xa410",
  "effectiveGasPrice": "0x3b9aca00",
  "from": "0xdd0446989c851a76bf03e10a04eae1488e58a0d9",
  "gasUsed": "0x5208",
  "logs": [
    {
      "address": "0x6e226c9bab32be96ff2bc7da14a2bdf1f026045f",
      "topics": [
        "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef",
        "0x000000000000000000000000dd0446989c851a76bf03e10a04eae1488e58a0d9"
      ],
      "data": "0x0000000000000000000000000000000000000000000000000de0b6b3a7640000",
      "blockNumber": "0x807b3c",
      "transactionHash": "0x05ac269811b4ff3faa7f64466db468adbefbf5231b5d4946b9aa82bbf293ff52",
      "transactionIndex": "0x0",
      "blockHash": "0x67a384763b3b986363694c48b710c4a61d92e684ff65bc39ce3f843cc0ea35f2",
      "logIndex": "0x0",
      "removed": false
    },
    {
      "address": "0x6e226c9bab32be96ff2bc7da14a2bdf1f026045f",
      "topics": [],
      "data": "0x",
      "blockNumber": "0x807b3c",
      "transactionHash": "0x05ac269811b4ff3faa7f64466db468adbefbf5231b5d4946b9aa82bbf293ff52",
      "transactionIndex": "0x0",
      "blockHash": "0x67a384763b3b986363694c48b710c4a61d92e684ff65bc39ce3f843cc0ea35f2",
      "logIndex": "0x1",
      "removed": false
    }
  ],
  "logsBloom": "0x00",
  "status": "0x1",
  "to": "0x6e226c9bab32be96ff2bc7da14a2bdf1f026045f",
  "transactionHash": "0x05ac269811b4ff3faa7f64466db468adbefbf5231b5d4946b9aa82bbf293ff52",
  "transactionIndex": "0x0",
  "type": "0x2"
}`
